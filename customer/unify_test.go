package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornellb28/orderbbs-app/entity"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUnifyProfileWinsOverSubscriberAndOrder(t *testing.T) {
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	profiles := []entity.CustomerProfile{{
		Email:     "Ina.Chen@Example.com",
		Name:      strPtr("Ina C."),
		Phone:     strPtr("+13125550142"),
		SMSOptIn:  boolPtr(false),
		VIP:       true,
		UpdatedAt: mar,
	}}
	subs := []entity.Subscriber{{
		Email:     "ina.chen@example.com",
		Name:      strPtr("Ina from the list"),
		Phone:     strPtr("+19995550000"),
		CreatedAt: jan,
	}}
	orders := []entity.Order{{
		Email:        "INA.CHEN@example.com",
		CustomerName: "Ina Chen",
		Phone:        strPtr("+18885550000"),
		SMSOptIn:     true,
		Status:       entity.OrderConfirmed,
		Paid:         true,
		CreatedAt:    feb,
	}}

	out := Unify(profiles, subs, orders)
	require.Len(t, out, 1)
	u := out[0]

	assert.Equal(t, "ina.chen@example.com", u.Email)
	assert.Equal(t, "Ina C.", *u.Name)
	assert.Equal(t, "+13125550142", *u.Phone)
	// Explicit profile false beats the order's opt-in.
	require.NotNil(t, u.SMSOptIn)
	assert.False(t, *u.SMSOptIn)
	assert.True(t, u.VIP)
	assert.True(t, u.Ordered)
	assert.True(t, u.Subscribed)
	assert.Equal(t, jan, *u.FirstSeen)
	assert.Equal(t, mar, *u.LastSeen)
	require.NotNil(t, u.LastOrderStatus)
	assert.Equal(t, "confirmed", *u.LastOrderStatus)
	assert.True(t, *u.LastOrderPaid)
}

func TestUnifySubscriberFillsBlanks(t *testing.T) {
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	profiles := []entity.CustomerProfile{{Email: "a@example.com", VIP: false, UpdatedAt: jan}}
	subs := []entity.Subscriber{{
		Email:     "a@example.com",
		Name:      strPtr("Alex"),
		Phone:     strPtr("+13125550000"),
		CreatedAt: jan,
	}}

	out := Unify(profiles, subs, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "Alex", *out[0].Name)
	assert.Equal(t, "+13125550000", *out[0].Phone)
	assert.True(t, out[0].Subscribed)
	assert.False(t, out[0].VIP)
}

func TestUnifyLatestOrderWinsAmongOrders(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	orders := []entity.Order{
		{Email: "b@example.com", CustomerName: "Old Name", Status: entity.OrderPending, Paid: false, CreatedAt: early},
		{Email: "b@example.com", CustomerName: "New Name", Status: entity.OrderConfirmed, Paid: true, CreatedAt: late},
	}

	out := Unify(nil, nil, orders)
	require.Len(t, out, 1)
	u := out[0]
	assert.Equal(t, "New Name", *u.Name)
	assert.Equal(t, "confirmed", *u.LastOrderStatus)
	assert.True(t, *u.LastOrderPaid)
	assert.Equal(t, early, *u.FirstSeen)
	assert.Equal(t, late, *u.LastSeen)
}

func TestUnifyVIPOnlyFromProfiles(t *testing.T) {
	out := Unify(nil,
		[]entity.Subscriber{{Email: "c@example.com", CreatedAt: time.Now()}},
		[]entity.Order{{Email: "d@example.com", CreatedAt: time.Now()}},
	)
	require.Len(t, out, 2)
	for _, u := range out {
		assert.False(t, u.VIP)
	}
}

func TestUnifyOutputSortedByEmail(t *testing.T) {
	out := Unify(nil, []entity.Subscriber{
		{Email: "z@example.com", CreatedAt: time.Now()},
		{Email: "a@example.com", CreatedAt: time.Now()},
	}, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "a@example.com", out[0].Email)
	assert.Equal(t, "z@example.com", out[1].Email)
}

func TestApplyFilter(t *testing.T) {
	list := []Unified{
		{Email: "vip@example.com", VIP: true, Ordered: true, Name: strPtr("Vera")},
		{Email: "sub@example.com", Subscribed: true, Phone: strPtr("+13125550142")},
		{Email: "buyer@example.com", Ordered: true},
	}

	assert.Len(t, ApplyFilter(list, Filter{VIP: true}), 1)
	assert.Len(t, ApplyFilter(list, Filter{Ordered: true}), 2)
	assert.Len(t, ApplyFilter(list, Filter{Subscribed: true}), 1)

	byName := ApplyFilter(list, Filter{Search: "vera"})
	require.Len(t, byName, 1)
	assert.Equal(t, "vip@example.com", byName[0].Email)

	// Phone search matches on digits regardless of formatting.
	byPhone := ApplyFilter(list, Filter{Search: "(312) 555-0142"})
	require.Len(t, byPhone, 1)
	assert.Equal(t, "sub@example.com", byPhone[0].Email)

	assert.Empty(t, ApplyFilter(list, Filter{Search: "nobody"}))
}
