package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// RecentLimit caps the admin order listing.
const RecentLimit = 100

type Service interface {
	List(ctx context.Context) ([]Order, error)
	// Get returns the order with its items and, when present, its payment.
	Get(ctx context.Context, id snowflake.ID) (*Order, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID snowflake.ID, status string) (*Payment, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
