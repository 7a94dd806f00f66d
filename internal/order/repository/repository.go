package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/internal/order/domain"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	*repository.Repository[domain.Order]
}

func New(s *repository.Session) *OrderRepository {
	return &OrderRepository{Repository: repository.For[domain.Order](s)}
}

// Recent returns the newest orders by order date.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	var items []domain.Order
	err := r.Query(ctx).
		Order("order_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetDetails loads the order with its items and payment, or nil when absent.
func (r *OrderRepository) GetDetails(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	var o domain.Order
	err := r.Query(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Payment").
		Where("id = ?", id).
		Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.Query(ctx).Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CountBetween counts orders dated in [from, to).
func (r *OrderRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.Count(ctx, repository.Where("order_date >= ? AND order_date < ?", from.UTC(), to.UTC()))
}

type ItemRepository struct {
	*repository.Repository[domain.OrderItem]
}

func NewItems(s *repository.Session) *ItemRepository {
	return &ItemRepository{Repository: repository.For[domain.OrderItem](s)}
}

func (r *ItemRepository) ForOrder(ctx context.Context, orderID snowflake.ID) ([]domain.OrderItem, error) {
	return r.Find(ctx, repository.Where("order_id = ?", orderID))
}

type PaymentRepository struct {
	*repository.Repository[domain.Payment]
}

func NewPayments(s *repository.Session) *PaymentRepository {
	return &PaymentRepository{Repository: repository.For[domain.Payment](s)}
}

// ForOrder returns nil without an error when the order has no payment.
func (r *PaymentRepository) ForOrder(ctx context.Context, orderID snowflake.ID) (*domain.Payment, error) {
	items, err := r.Find(ctx, repository.Where("order_id = ?", orderID))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}
