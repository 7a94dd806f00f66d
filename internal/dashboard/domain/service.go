package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidThreshold = errors.New("invalid_low_stock_threshold")

type Service interface {
	TotalOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TotalProducts(ctx context.Context) (int64, error)
	TotalCategories(ctx context.Context) (int64, error)
	// LowStockProductCount counts products whose stock is at or below threshold.
	LowStockProductCount(ctx context.Context, threshold int) (int64, error)
	// TodayOrders counts orders dated on the current UTC day.
	TodayOrders(ctx context.Context) (int64, error)
	Summary(ctx context.Context, req SummaryRequest) (*Summary, error)
}

type SummaryRequest struct {
	// LowStockThreshold overrides the configured threshold when set.
	LowStockThreshold *int
}

type Summary struct {
	TotalProducts     int64           `json:"total_products"`
	TotalCategories   int64           `json:"total_categories"`
	TotalOrders       int64           `json:"total_orders"`
	TodayOrders       int64           `json:"today_orders"`
	LowStockProducts  int64           `json:"low_stock_products"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	GeneratedAt       time.Time       `json:"generated_at"`
}
