package customer

import (
	"sort"
	"strings"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
)

// Unified is the derived one-row-per-email customer view. It is never
// persisted; it is recomputed from the three sources on every read.
type Unified struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Phone *string `json:"phone"`

	// Null when no source carries an opinion.
	SMSOptIn *bool `json:"sms_opt_in"`

	FirstSeen *time.Time `json:"first_seen"`
	LastSeen  *time.Time `json:"last_seen"`

	Ordered    bool `json:"ordered"`
	Subscribed bool `json:"subscribed"`
	VIP        bool `json:"vip"`

	LastOrderStatus *string `json:"last_order_status"`
	LastOrderPaid   *bool   `json:"last_order_paid"`
}

// Filter selects and searches unified customers.
type Filter struct {
	Ordered    bool
	Subscribed bool
	VIP        bool
	// Search matches name, email, or digits-only phone, case-insensitive.
	Search string
}

func maxTime(a *time.Time, b time.Time) *time.Time {
	if a == nil || b.After(*a) {
		return &b
	}
	return a
}

func minTime(a *time.Time, b time.Time) *time.Time {
	if a == nil || b.Before(*a) {
		return &b
	}
	return a
}

// Unify merges profiles, subscribers and orders into one row per normalized
// email. Field precedence: profile wins over subscriber wins over the most
// recent order; sms_opt_in respects an explicit profile false; vip is
// granted by profiles only; ordered/subscribed OR across sources;
// first_seen is the earliest order or subscriber created_at; last_seen the
// latest of order/subscriber created_at and profile updated_at. Pure
// function, independent of storage.
func Unify(profiles []entity.CustomerProfile, subs []entity.Subscriber, orders []entity.Order) []Unified {
	m := make(map[string]*Unified)

	for i := range profiles {
		p := &profiles[i]
		email := NormalizeEmail(p.Email)
		if email == "" {
			continue
		}
		updated := p.UpdatedAt
		m[email] = &Unified{
			Email:    email,
			Name:     p.Name,
			Phone:    p.Phone,
			SMSOptIn: p.SMSOptIn,
			LastSeen: &updated,
			VIP:      p.VIP,
		}
	}

	for i := range subs {
		sub := &subs[i]
		email := NormalizeEmail(sub.Email)
		if email == "" {
			continue
		}
		u, ok := m[email]
		if !ok {
			created := sub.CreatedAt
			m[email] = &Unified{
				Email:      email,
				Name:       sub.Name,
				Phone:      sub.Phone,
				FirstSeen:  &created,
				LastSeen:   &created,
				Subscribed: true,
			}
			continue
		}
		u.Subscribed = true
		if u.Name == nil {
			u.Name = sub.Name
		}
		if u.Phone == nil {
			u.Phone = sub.Phone
		}
		u.FirstSeen = minTime(u.FirstSeen, sub.CreatedAt)
		u.LastSeen = maxTime(u.LastSeen, sub.CreatedAt)
	}

	// Newest first so the first order seen per email is the latest one;
	// slice order breaks created_at ties.
	sorted := make([]entity.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	latestSeen := make(map[string]struct{})
	for i := range sorted {
		o := &sorted[i]
		email := NormalizeEmail(o.Email)
		if email == "" {
			continue
		}
		u, ok := m[email]
		if !ok {
			created := o.CreatedAt
			opt := o.SMSOptIn
			status := string(o.Status)
			paid := o.Paid
			name := o.CustomerName
			u = &Unified{
				Email:           email,
				Phone:           o.Phone,
				SMSOptIn:        &opt,
				FirstSeen:       &created,
				LastSeen:        &created,
				Ordered:         true,
				LastOrderStatus: &status,
				LastOrderPaid:   &paid,
			}
			if name != "" {
				u.Name = &name
			}
			m[email] = u
			latestSeen[email] = struct{}{}
			continue
		}

		u.Ordered = true
		u.FirstSeen = minTime(u.FirstSeen, o.CreatedAt)
		u.LastSeen = maxTime(u.LastSeen, o.CreatedAt)

		if _, done := latestSeen[email]; !done {
			latestSeen[email] = struct{}{}
			if u.Name == nil && o.CustomerName != "" {
				name := o.CustomerName
				u.Name = &name
			}
			if u.Phone == nil {
				u.Phone = o.Phone
			}
			if u.SMSOptIn == nil {
				opt := o.SMSOptIn
				u.SMSOptIn = &opt
			}
			status := string(o.Status)
			paid := o.Paid
			u.LastOrderStatus = &status
			u.LastOrderPaid = &paid
		}
	}

	out := make([]Unified, 0, len(m))
	for _, u := range m {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// ApplyFilter narrows a unified list by flags and free-text search.
func ApplyFilter(list []Unified, f Filter) []Unified {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	searchDigits := phoneDigits(search)

	out := make([]Unified, 0, len(list))
	for _, u := range list {
		if f.Ordered && !u.Ordered {
			continue
		}
		if f.Subscribed && !u.Subscribed {
			continue
		}
		if f.VIP && !u.VIP {
			continue
		}
		if search != "" {
			hit := strings.Contains(u.Email, search)
			if !hit && u.Name != nil {
				hit = strings.Contains(strings.ToLower(*u.Name), search)
			}
			if !hit && u.Phone != nil && searchDigits != "" {
				hit = strings.Contains(phoneDigits(*u.Phone), searchDigits)
			}
			if !hit {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}
