// Package reminder implements the scheduled pickup reminder sweep: one SMS
// per qualifying order, at most once per reminder kind, gated by the
// per-order sent timestamps.
package reminder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	"github.com/cornellb28/orderbbs-app/notify"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/rs/zerolog/log"
)

// Result reports a sweep's outcome for the cron response body.
type Result struct {
	Kind             entity.ReminderKind `json:"kind"`
	Sent             int                 `json:"sent"`
	Failed           int                 `json:"failed,omitempty"`
	TargetPickupDate string              `json:"target_pickup_date,omitempty"`
	Note             string              `json:"note,omitempty"`
}

type Service interface {
	Run(ctx context.Context, kind entity.ReminderKind) (*Result, error)
}

type service struct {
	events eventpkg.Repository
	orders orderpkg.Repository
	sms    notify.SMSSender
	loc    *time.Location
	now    func() time.Time
}

func New(events eventpkg.Repository, orders orderpkg.Repository, sms notify.SMSSender, loc *time.Location) Service {
	return &service{events: events, orders: orders, sms: sms, loc: loc, now: time.Now}
}

// civilDate formats t as YYYY-MM-DD in the fixed pickup time zone.
func (s *service) civilDate(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

// timeLabel converts "13:00:00" to "1:00 PM".
func timeLabel(tod string) string {
	parts := strings.Split(tod, ":")
	hh, mm := 0, 0
	if len(parts) > 0 {
		hh, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		mm, _ = strconv.Atoi(parts[1])
	}
	ampm := "AM"
	h := hh
	switch {
	case hh == 0:
		h = 12
	case hh == 12:
		ampm = "PM"
	case hh > 12:
		h = hh - 12
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, mm, ampm)
}

func message(kind entity.ReminderKind, e *entity.Event) string {
	window := timeLabel(e.PickupStart) + "–" + timeLabel(e.PickupEnd)
	if kind == entity.ReminderDayOf {
		return fmt.Sprintf("Today is pickup day! %s pickup is today (%s) %s at %s. %s",
			e.Title, e.PickupDate, window, e.LocationName, e.LocationAddress)
	}
	return fmt.Sprintf("Reminder: pickup is tomorrow. %s pickup is %s %s at %s. %s",
		e.Title, e.PickupDate, window, e.LocationName, e.LocationAddress)
}

// Run sends the sweep for one reminder kind. Sends are sequential; a failed
// send logs and continues so one bad number cannot stall the rest. The
// stamp write follows the send, so a stamp failure can cause a duplicate on
// the next run: at-least-once, not exactly-once.
func (s *service) Run(ctx context.Context, kind entity.ReminderKind) (*Result, error) {
	if kind != entity.ReminderDayBefore && kind != entity.ReminderDayOf {
		return nil, fmt.Errorf("invalid reminder kind %q", kind)
	}

	evt, err := s.events.GetActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return &Result{Kind: kind, Note: "no active event"}, nil
	}

	now := s.now()
	target := s.civilDate(now)
	if kind == entity.ReminderDayBefore {
		target = s.civilDate(now.Add(24 * time.Hour))
	}
	if string(evt.PickupDate) != target {
		return &Result{
			Kind:             kind,
			TargetPickupDate: target,
			Note:             fmt.Sprintf("active event pickup_date (%s) does not match target (%s)", evt.PickupDate, target),
		}, nil
	}

	targets, err := s.orders.ListReminderTargets(ctx, evt.ID, kind)
	if err != nil {
		return nil, err
	}

	res := &Result{Kind: kind, TargetPickupDate: target}
	body := message(kind, evt)
	for i := range targets {
		o := &targets[i]
		if o.Phone == nil {
			continue
		}
		if err := s.sms.Send(ctx, *o.Phone, body); err != nil {
			res.Failed++
			log.Error().Err(err).Str("order_id", o.ID.String()).Str("kind", string(kind)).Msg("reminder sms failed")
			continue
		}
		if err := s.orders.StampReminder(ctx, o.ID, kind, s.now()); err != nil {
			// Sent but not stamped: the next run will resend. Accepted.
			log.Error().Err(err).Str("order_id", o.ID.String()).Str("kind", string(kind)).Msg("reminder stamp failed after send")
		}
		res.Sent++
	}

	log.Info().Str("kind", string(kind)).Int("sent", res.Sent).Int("failed", res.Failed).Msg("reminder sweep complete")
	return res, nil
}
