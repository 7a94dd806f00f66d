package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/pkg/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound   = errors.New("order_not_found")
	ErrPaymentNotFound = errors.New("payment_not_found")

	ErrInvalidStatus        = validation.New("status", "invalid_status", "invalid status")
	ErrInvalidPaymentStatus = validation.New("payment_status", "invalid_payment_status", "invalid payment status")
)

// OrderStatus values have no transition rules; any status may follow any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderStatuses...)
}

// ParseOrderStatus accepts only the exact status names.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	raw = strings.TrimSpace(raw)
	for _, s := range orderStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

var paymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func PaymentStatuses() []PaymentStatus {
	return append([]PaymentStatus(nil), paymentStatuses...)
}

func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	raw = strings.TrimSpace(raw)
	for _, s := range paymentStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type Order struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderDate    time.Time       `json:"order_date" gorm:"not null;index"`
	CustomerName string          `json:"customer_name" gorm:"type:varchar(200)"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
	Items        []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment      *Payment        `json:"payment,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderID   snowflake.ID    `json:"order_id" gorm:"not null;index"`
	ProductID snowflake.ID    `json:"product_id" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

type Payment struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderID       snowflake.ID    `json:"order_id" gorm:"not null;uniqueIndex"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(50)"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);not null"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }
