package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	ListFeatured(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID snowflake.ID) ([]Product, error)
	Get(ctx context.Context, id snowflake.ID) (*Product, error)
	ListCategories(ctx context.Context) ([]categorydomain.Category, error)
	ListSortedByPrice(ctx context.Context, ascending bool) ([]Product, error)
	ListPage(ctx context.Context, page pagination.Pagination) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	ListByCategoryPage(ctx context.Context, categoryID snowflake.ID, page pagination.Pagination) ([]Product, error)
	CountByCategory(ctx context.Context, categoryID snowflake.ID) (int64, error)

	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"is_featured"`
	CategoryID  snowflake.ID    `json:"category_id"`
	Metadata    map[string]any  `json:"metadata"`
}

// UpdateRequest replaces every editable field of an existing product.
type UpdateRequest struct {
	ID          snowflake.ID    `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"is_featured"`
	CategoryID  snowflake.ID    `json:"category_id"`
	Metadata    map[string]any  `json:"metadata"`
}
