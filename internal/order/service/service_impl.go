package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/internal/order/domain"
	orderrepo "github.com/railzwaylabs/backoffice/internal/order/repository"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store *repository.Store
	Log   *zap.Logger
}

type Service struct {
	store *repository.Store
	log   *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("order.service"),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return orderrepo.New(s.store.Session()).Recent(ctx, domain.RecentLimit)
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	o, err := orderrepo.New(s.store.Session()).GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// UpdateStatus checks set membership only; no transition is forbidden.
func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, status string) (*domain.Order, error) {
	repo := orderrepo.New(s.store.Session())
	o, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}

	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		s.log.Warn("rejecting invalid order status", zap.String("order_id", id.String()), zap.String("status", status))
		return nil, domain.ErrInvalidStatus
	}

	previous := o.Status
	o.Status = next
	repo.Update(o)
	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, err
	}
	if affected <= 0 {
		return nil, fmt.Errorf("order status could not be updated: %w", repository.ErrNoRowsAffected)
	}

	s.log.Info("order status updated",
		zap.String("order_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	return o, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID snowflake.ID, status string) (*domain.Payment, error) {
	repo := orderrepo.NewPayments(s.store.Session())
	p, err := repo.ForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPaymentNotFound
	}

	next, ok := domain.ParsePaymentStatus(status)
	if !ok {
		s.log.Warn("rejecting invalid payment status", zap.String("order_id", orderID.String()), zap.String("status", status))
		return nil, domain.ErrInvalidPaymentStatus
	}

	p.PaymentStatus = next
	repo.Update(p)
	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, err
	}
	if affected <= 0 {
		return nil, fmt.Errorf("payment status could not be updated: %w", repository.ErrNoRowsAffected)
	}

	s.log.Info("payment status updated", zap.String("order_id", orderID.String()), zap.String("status", string(next)))
	return p, nil
}

// Delete removes the order together with its items and payment in one commit.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	sess := s.store.Session()
	orders := orderrepo.New(sess)
	items := orderrepo.NewItems(sess)
	payments := orderrepo.NewPayments(sess)

	o, err := orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrOrderNotFound
	}

	lines, err := items.ForOrder(ctx, id)
	if err != nil {
		return err
	}
	for i := range lines {
		items.Remove(&lines[i])
	}

	payment, err := payments.ForOrder(ctx, id)
	if err != nil {
		return err
	}
	if payment != nil {
		payments.Remove(payment)
	}

	orders.Remove(o)
	affected, err := sess.SaveChanges(ctx)
	if err != nil {
		return err
	}
	if affected <= 0 {
		return fmt.Errorf("order could not be deleted: %w", repository.ErrNoRowsAffected)
	}

	s.log.Info("order deleted", zap.String("order_id", id.String()), zap.Int("items", len(lines)))
	return nil
}
