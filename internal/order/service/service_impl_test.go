package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/internal/order/domain"
	"github.com/railzwaylabs/backoffice/internal/order/service"
	"github.com/railzwaylabs/backoffice/internal/testdb"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedOrder(t *testing.T, store *repository.Store, node *snowflake.Node, at time.Time, withPayment bool) domain.Order {
	t.Helper()
	db := store.DB()

	o := domain.Order{
		ID:           node.Generate(),
		OrderDate:    at,
		CustomerName: "Ada",
		TotalAmount:  decimal.RequireFromString("20.00"),
		Status:       domain.OrderStatusPending,
	}
	require.NoError(t, db.Create(&o).Error)

	items := []domain.OrderItem{
		{ID: node.Generate(), OrderID: o.ID, ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		{ID: node.Generate(), OrderID: o.ID, ProductID: 2, Quantity: 3, UnitPrice: decimal.NewFromInt(5)},
	}
	require.NoError(t, db.Create(&items).Error)

	if withPayment {
		require.NoError(t, db.Create(&domain.Payment{
			ID:            node.Generate(),
			OrderID:       o.ID,
			Amount:        o.TotalAmount,
			PaymentMethod: "card",
			PaymentStatus: domain.PaymentStatusPending,
		}).Error)
	}
	return o
}

func newService(t *testing.T) (domain.Service, *repository.Store, *snowflake.Node) {
	t.Helper()
	store := testdb.Store(t)
	return service.New(service.Params{Store: store, Log: zap.NewNop()}), store, testdb.Node(t)
}

func TestGet_LoadsItemsAndPayment(t *testing.T) {
	svc, store, node := newService(t)
	ctx := context.Background()
	o := seedOrder(t, store, node, time.Now().UTC(), true)

	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	require.NotNil(t, got.Payment)
	assert.Equal(t, domain.PaymentStatusPending, got.Payment.PaymentStatus)

	_, err = svc.Get(ctx, 1)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	svc, store, node := newService(t)
	now := time.Now().UTC()
	older := seedOrder(t, store, node, now.Add(-48*time.Hour), false)
	newer := seedOrder(t, store, node, now, false)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)
}

func TestUpdateStatus(t *testing.T) {
	svc, store, node := newService(t)
	ctx := context.Background()
	o := seedOrder(t, store, node, time.Now().UTC(), false)

	updated, err := svc.UpdateStatus(ctx, o.ID, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	_, err = svc.UpdateStatus(ctx, o.ID, "Bogus")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, o.ID, "shipped")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)

	// any listed status is accepted, including moving backwards
	_, err = svc.UpdateStatus(ctx, o.ID, "Pending")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, 42, "Shipped")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, store, node := newService(t)
	ctx := context.Background()
	paid := seedOrder(t, store, node, time.Now().UTC(), true)
	unpaid := seedOrder(t, store, node, time.Now().UTC(), false)

	for _, status := range []string{"Completed", "Failed", "Refunded", "Pending"} {
		p, err := svc.UpdatePaymentStatus(ctx, paid.ID, status)
		require.NoError(t, err, status)
		assert.Equal(t, domain.PaymentStatus(status), p.PaymentStatus)
	}

	_, err := svc.UpdatePaymentStatus(ctx, paid.ID, "Paid")
	require.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)

	_, err = svc.UpdatePaymentStatus(ctx, unpaid.ID, "Completed")
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)

	got, err := svc.Get(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, got.Payment.PaymentStatus)
}

func TestDelete_RemovesItemsAndPayment(t *testing.T) {
	svc, store, node := newService(t)
	ctx := context.Background()
	o := seedOrder(t, store, node, time.Now().UTC(), true)
	keep := seedOrder(t, store, node, time.Now().UTC(), true)

	require.NoError(t, svc.Delete(ctx, o.ID))

	_, err := svc.Get(ctx, o.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	var items, payments int64
	require.NoError(t, store.DB().Model(&domain.OrderItem{}).Where("order_id = ?", o.ID).Count(&items).Error)
	require.NoError(t, store.DB().Model(&domain.Payment{}).Where("order_id = ?", o.ID).Count(&payments).Error)
	assert.Zero(t, items)
	assert.Zero(t, payments)

	_, err = svc.Get(ctx, keep.ID)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, o.ID), domain.ErrOrderNotFound)
}
