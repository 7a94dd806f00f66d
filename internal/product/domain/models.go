package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/pkg/validation"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MaxNameLength matches the width of the name column.
const MaxNameLength = 200

var (
	ErrProductNotFound = errors.New("product_not_found")

	ErrInvalidName     = validation.New("name", "invalid_name", "name is required")
	ErrNameTooLong     = validation.New("name", "name_too_long", "name must be at most 200 characters")
	ErrInvalidCategory = validation.New("category_id", "invalid_category", "invalid category selected")
	ErrNegativePrice   = validation.New("price", "negative_price", "price must be non-negative")
	ErrNegativeStock   = validation.New("stock", "negative_stock", "stock must be non-negative")
)

type Product struct {
	ID          snowflake.ID             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string                   `json:"name" gorm:"type:varchar(200);not null"`
	Description string                   `json:"description" gorm:"type:text"`
	Price       decimal.Decimal          `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int                      `json:"stock" gorm:"not null"`
	IsFeatured  bool                     `json:"is_featured" gorm:"not null"`
	CategoryID  snowflake.ID             `json:"category_id" gorm:"not null;index"`
	Category    *categorydomain.Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Metadata    datatypes.JSONMap        `json:"metadata,omitempty"`
	CreatedAt   time.Time                `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time                `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
