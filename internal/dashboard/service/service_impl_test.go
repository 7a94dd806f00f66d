package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/internal/clock"
	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/railzwaylabs/backoffice/internal/dashboard/domain"
	"github.com/railzwaylabs/backoffice/internal/dashboard/service"
	orderdomain "github.com/railzwaylabs/backoffice/internal/order/domain"
	productdomain "github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/railzwaylabs/backoffice/internal/testdb"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func newService(t *testing.T, store *repository.Store, rdb *redis.Client, ttl time.Duration) domain.Service {
	t.Helper()
	cfg := config.Config{Dashboard: config.DashboardConfig{LowStockThreshold: 5, CacheTTL: ttl}}
	return service.New(service.Params{
		Store:  store,
		Log:    zap.NewNop(),
		Clock:  clock.Fixed(now),
		Config: cfg,
		Redis:  rdb,
	})
}

func seedCatalog(t *testing.T, store *repository.Store, node *snowflake.Node, name string, stocks ...int) {
	t.Helper()
	cat := categorydomain.Category{ID: node.Generate(), Name: name, Slug: name}
	require.NoError(t, store.DB().Create(&cat).Error)
	for _, stock := range stocks {
		require.NoError(t, store.DB().Create(&productdomain.Product{
			ID:         node.Generate(),
			Name:       "p",
			Stock:      stock,
			CategoryID: cat.ID,
		}).Error)
	}
}

func seedOrder(t *testing.T, store *repository.Store, node *snowflake.Node, at time.Time, total string) {
	t.Helper()
	require.NoError(t, store.DB().Create(&orderdomain.Order{
		ID:          node.Generate(),
		OrderDate:   at,
		TotalAmount: decimal.RequireFromString(total),
		Status:      orderdomain.OrderStatusPending,
	}).Error)
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, testdb.Store(t), nil, 0)

	revenue, err := svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())

	orders, err := svc.TotalOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, orders)

	sum, err := svc.Summary(ctx, domain.SummaryRequest{})
	require.NoError(t, err)
	assert.Zero(t, sum.TotalProducts)
	assert.Zero(t, sum.TodayOrders)
	assert.Equal(t, 5, sum.LowStockThreshold)
}

func TestAggregates(t *testing.T) {
	ctx := context.Background()
	store := testdb.Store(t)
	node := testdb.Node(t)
	svc := newService(t, store, nil, 0)

	seedCatalog(t, store, node, "general", 0, 3, 5, 6, 50)
	midnight := clock.StartOfDay(now)
	seedOrder(t, store, node, midnight, "10.00")
	seedOrder(t, store, node, midnight.Add(-time.Microsecond), "25.50")
	seedOrder(t, store, node, midnight.Add(24*time.Hour), "0.00")

	revenue, err := svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.RequireFromString("35.50")), revenue.String())

	orders, err := svc.TotalOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, orders)

	today, err := svc.TodayOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, today)

	products, err := svc.TotalProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, products)

	categories, err := svc.TotalCategories(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, categories)

	low, err := svc.LowStockProductCount(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 3, low)

	none, err := svc.LowStockProductCount(ctx, -1)
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestSummary_ThresholdOverride(t *testing.T) {
	ctx := context.Background()
	store := testdb.Store(t)
	seedCatalog(t, store, testdb.Node(t), "general", 0, 3, 10)
	svc := newService(t, store, nil, 0)

	sum, err := svc.Summary(ctx, domain.SummaryRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.LowStockProducts)
	assert.Equal(t, now, sum.GeneratedAt)

	threshold := 10
	sum, err = svc.Summary(ctx, domain.SummaryRequest{LowStockThreshold: &threshold})
	require.NoError(t, err)
	assert.EqualValues(t, 3, sum.LowStockProducts)
	assert.Equal(t, 10, sum.LowStockThreshold)

	negative := -1
	_, err = svc.Summary(ctx, domain.SummaryRequest{LowStockThreshold: &negative})
	require.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

func TestSummary_CachedInRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := testdb.Store(t)
	node := testdb.Node(t)
	seedCatalog(t, store, node, "first", 1)
	svc := newService(t, store, rdb, time.Minute)

	first, err := svc.Summary(ctx, domain.SummaryRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.TotalProducts)
	assert.True(t, mr.Exists("dashboard:summary:5"))

	seedCatalog(t, store, node, "second", 2)

	cached, err := svc.Summary(ctx, domain.SummaryRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, cached.TotalProducts)

	mr.FastForward(2 * time.Minute)

	fresh, err := svc.Summary(ctx, domain.SummaryRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, fresh.TotalProducts)
}
