package service

import (
	"context"
	"strings"
	"time"

	customerpkg "github.com/cornellb28/orderbbs-app/customer"
	"github.com/cornellb28/orderbbs-app/entity"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
)

type customerService struct {
	repo   customerpkg.Repository
	orders orderpkg.Repository
}

func NewCustomerService(repo customerpkg.Repository, orders orderpkg.Repository) customerpkg.Service {
	return &customerService{repo: repo, orders: orders}
}

func (s *customerService) Subscribe(ctx context.Context, req customerpkg.SubscribeRequest) error {
	email := customerpkg.NormalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return customerpkg.ErrInvalidEmail
	}

	phoneRaw := strings.TrimSpace(req.Phone)
	var phone *string
	if phoneRaw != "" {
		normalized, ok := customerpkg.NormalizePhoneE164US(phoneRaw)
		if !ok {
			return customerpkg.ErrInvalidPhone
		}
		phone = &normalized
	}
	if req.SMSOptIn && phone == nil {
		return customerpkg.ErrInvalidPhone
	}

	sub := &entity.Subscriber{
		Email:    email,
		Phone:    phone,
		SMSOptIn: req.SMSOptIn,
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		sub.Name = &name
	}
	return s.repo.UpsertSubscriber(ctx, sub)
}

func (s *customerService) ListUnified(ctx context.Context, f customerpkg.Filter) ([]customerpkg.Unified, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return customerpkg.ApplyFilter(customerpkg.Unify(profiles, subs, orders), f), nil
}

func (s *customerService) GetDetail(ctx context.Context, email string) (*customerpkg.Detail, error) {
	email = customerpkg.NormalizeEmail(email)
	if email == "" {
		return nil, customerpkg.ErrInvalidEmail
	}

	profile, err := s.repo.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.GetSubscriber(ctx, email)
	if err != nil {
		return nil, err
	}
	latest, err := s.orders.LatestByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	first, err := s.orders.FirstByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	total, paid, err := s.orders.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	d := &customerpkg.Detail{Email: email, OrderCount: total, PaidOrderCount: paid}

	// Merge precedence: profile over subscriber over latest order.
	if profile != nil {
		d.Name = profile.Name
		d.Phone = profile.Phone
		d.SMSOptIn = profile.SMSOptIn
		d.VIP = profile.VIP
		d.Notes = profile.Notes
	}
	if sub != nil {
		if d.Name == nil {
			d.Name = sub.Name
		}
		if d.Phone == nil {
			d.Phone = sub.Phone
		}
	}
	if latest != nil {
		if d.Name == nil && latest.CustomerName != "" {
			name := latest.CustomerName
			d.Name = &name
		}
		if d.Phone == nil {
			d.Phone = latest.Phone
		}
		if d.SMSOptIn == nil {
			opt := latest.SMSOptIn
			d.SMSOptIn = &opt
		}
		status := string(latest.Status)
		isPaid := latest.Paid
		d.LastOrderStatus = &status
		d.LastOrderPaid = &isPaid
	}

	if first != nil {
		t := first.CreatedAt
		d.FirstSeen = &t
	} else if sub != nil {
		t := sub.CreatedAt
		d.FirstSeen = &t
	}
	if latest != nil {
		t := latest.CreatedAt
		d.LastSeen = &t
	} else if sub != nil {
		t := sub.CreatedAt
		d.LastSeen = &t
	}

	switch {
	case latest != nil && sub != nil:
		d.Source = "both"
	case latest != nil:
		d.Source = "orders"
	case sub != nil:
		d.Source = "subscribers"
	default:
		d.Source = "unknown"
	}
	return d, nil
}

func (s *customerService) UpdateProfile(ctx context.Context, email string, req customerpkg.UpdateProfileRequest) (*entity.CustomerProfile, error) {
	email = customerpkg.NormalizeEmail(email)
	if email == "" {
		return nil, customerpkg.ErrInvalidEmail
	}

	existing, err := s.repo.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	p := &entity.CustomerProfile{Email: email}
	if existing != nil {
		*p = *existing
	}

	if req.Name != nil {
		p.Name = req.Name
	}
	if req.Phone != nil {
		raw := strings.TrimSpace(*req.Phone)
		if raw == "" {
			p.Phone = nil
		} else {
			normalized, ok := customerpkg.NormalizePhoneE164US(raw)
			if !ok {
				return nil, customerpkg.ErrInvalidPhone
			}
			p.Phone = &normalized
		}
	}
	if req.SMSOptIn != nil {
		p.SMSOptIn = req.SMSOptIn
	}
	if req.VIP != nil {
		p.VIP = *req.VIP
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	p.UpdatedAt = time.Now()

	return s.repo.UpsertProfile(ctx, p)
}
