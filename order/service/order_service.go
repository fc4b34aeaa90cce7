package service

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/google/uuid"
)

type orderService struct {
	repo orderpkg.Repository
}

func NewOrderService(repo orderpkg.Repository) orderpkg.Service { return &orderService{repo: repo} }

func (s *orderService) GetReceipt(ctx context.Context, id uuid.UUID, token string) (*orderpkg.Summary, error) {
	o, err := s.repo.GetOrderByIDAndToken(ctx, id, token)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, orderpkg.ErrNotFound
	}
	sum, err := s.repo.GetSummary(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return nil, orderpkg.ErrNotFound
	}
	return sum, nil
}

func (s *orderService) GetSummary(ctx context.Context, id uuid.UUID) (*orderpkg.Summary, error) {
	sum, err := s.repo.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return nil, orderpkg.ErrNotFound
	}
	return sum, nil
}

func (s *orderService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Order, orderpkg.EventOrderTotals, error) {
	list, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, orderpkg.EventOrderTotals{}, err
	}
	var t orderpkg.EventOrderTotals
	for i := range list {
		t.CountTotal++
		t.RevenueTotalCents += list[i].TotalCents
		if list[i].Paid {
			t.CountPaid++
			t.RevenuePaidCents += list[i].TotalCents
		} else {
			t.CountUnpaid++
		}
	}
	return list, t, nil
}

func (s *orderService) StatsByEvent(ctx context.Context) (map[uuid.UUID]entity.EventStats, error) {
	return s.repo.StatsByEvent(ctx)
}
