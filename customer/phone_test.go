package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneE164US(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"3125550142", "+13125550142", true},
		{"(312) 555-0142", "+13125550142", true},
		{"312.555.0142", "+13125550142", true},
		{"13125550142", "+13125550142", true},
		{"+1 312 555 0142", "+13125550142", true},
		{"555-0142", "", false},
		{"231255501420", "", false},
		{"23125550142", "", false}, // 11 digits but no leading 1
		{"", "", false},
		{"abc", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizePhoneE164US(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ina.chen@example.com", NormalizeEmail("  Ina.Chen@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
