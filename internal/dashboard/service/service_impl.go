package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	categoryrepo "github.com/railzwaylabs/backoffice/internal/category/repository"
	"github.com/railzwaylabs/backoffice/internal/clock"
	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/railzwaylabs/backoffice/internal/dashboard/domain"
	orderrepo "github.com/railzwaylabs/backoffice/internal/order/repository"
	productrepo "github.com/railzwaylabs/backoffice/internal/product/repository"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const summaryKeyPrefix = "dashboard:summary"

type Params struct {
	fx.In

	Store  *repository.Store
	Log    *zap.Logger
	Clock  clock.Clock
	Config config.Config
	Redis  *redis.Client `optional:"true"`
}

type Service struct {
	store     *repository.Store
	log       *zap.Logger
	clock     clock.Clock
	redis     *redis.Client
	threshold int
	cacheTTL  time.Duration
}

func New(p Params) domain.Service {
	return &Service{
		store:     p.Store,
		log:       p.Log.Named("dashboard.service"),
		clock:     p.Clock,
		redis:     p.Redis,
		threshold: p.Config.Dashboard.LowStockThreshold,
		cacheTTL:  p.Config.Dashboard.CacheTTL,
	}
}

func (s *Service) TotalOrders(ctx context.Context) (int64, error) {
	return orderrepo.New(s.store.Session()).Count(ctx)
}

func (s *Service) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return orderrepo.New(s.store.Session()).SumTotalAmount(ctx)
}

func (s *Service) TotalProducts(ctx context.Context) (int64, error) {
	return productrepo.New(s.store.Session()).Count(ctx)
}

func (s *Service) TotalCategories(ctx context.Context) (int64, error) {
	return categoryrepo.New(s.store.Session()).Count(ctx)
}

func (s *Service) LowStockProductCount(ctx context.Context, threshold int) (int64, error) {
	return productrepo.New(s.store.Session()).CountLowStock(ctx, threshold)
}

func (s *Service) TodayOrders(ctx context.Context) (int64, error) {
	start := clock.StartOfDay(s.clock.Now(ctx))
	return orderrepo.New(s.store.Session()).CountBetween(ctx, start, start.AddDate(0, 0, 1))
}

// Summary gathers every dashboard figure. When a cache TTL is configured
// and redis is available, results are cached per threshold.
func (s *Service) Summary(ctx context.Context, req domain.SummaryRequest) (*domain.Summary, error) {
	threshold := s.threshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}
	if threshold < 0 {
		return nil, domain.ErrInvalidThreshold
	}

	key := fmt.Sprintf("%s:%d", summaryKeyPrefix, threshold)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	sum := &domain.Summary{LowStockThreshold: threshold, GeneratedAt: s.clock.Now(ctx)}
	var err error
	if sum.TotalProducts, err = s.TotalProducts(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if sum.TotalCategories, err = s.TotalCategories(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if sum.TotalOrders, err = s.TotalOrders(ctx); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if sum.TodayOrders, err = s.TodayOrders(ctx); err != nil {
		return nil, fmt.Errorf("count today orders: %w", err)
	}
	if sum.LowStockProducts, err = s.LowStockProductCount(ctx, threshold); err != nil {
		return nil, fmt.Errorf("count low stock products: %w", err)
	}
	if sum.TotalRevenue, err = s.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	s.remember(ctx, key, sum)
	return sum, nil
}

func (s *Service) cached(ctx context.Context, key string) (*domain.Summary, bool) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var sum domain.Summary
	if err := json.Unmarshal(raw, &sum); err != nil {
		s.log.Warn("dropping unreadable dashboard cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &sum, true
}

func (s *Service) remember(ctx context.Context, key string, sum *domain.Summary) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(sum)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.log.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
