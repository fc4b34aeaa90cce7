package order

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcsLocalDateTime(t *testing.T) {
	assert.Equal(t, "20250315T110000", icsLocalDateTime("2025-03-15", "11:00:00"))
	assert.Equal(t, "20250315T110000", icsLocalDateTime("2025-03-15", "11:00"))
	assert.Equal(t, "20250315T090500", icsLocalDateTime("2025-03-15", "9:5"))
}

func TestEscapeICS(t *testing.T) {
	assert.Equal(t, `Soup\, noodles\; extras`, escapeICS("Soup, noodles; extras"))
	assert.Equal(t, `line1\nline2`, escapeICS("line1\nline2"))
	assert.Equal(t, `back\\slash`, escapeICS(`back\slash`))
}

func TestBuildPickupICS(t *testing.T) {
	id := uuid.New()
	sum := &Summary{
		ID: id,
		Event: SummaryEvent{
			Title:           "March Ramen Drop",
			PickupDate:      "2025-03-15",
			PickupStart:     "11:00:00",
			PickupEnd:       "13:00:00",
			LocationName:    "Logan Square Farmers Market",
			LocationAddress: "3107 W Logan Blvd, Chicago, IL",
		},
	}
	now := time.Date(2025, 3, 10, 16, 30, 0, 0, time.UTC)

	ics := BuildPickupICS(sum, now)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR"))
	assert.Contains(t, ics, "UID:"+id.String()+"@bowlandbrothsociety")
	assert.Contains(t, ics, "DTSTAMP:20250310T163000Z")
	assert.Contains(t, ics, "DTSTART;TZID=America/Chicago:20250315T110000")
	assert.Contains(t, ics, "DTEND;TZID=America/Chicago:20250315T130000")
	assert.Contains(t, ics, "SUMMARY:Pickup")
	// Commas in the address must be escaped.
	assert.Contains(t, ics, `3107 W Logan Blvd\, Chicago\, IL`)

	// Every line is CRLF-terminated with no bare newlines.
	require.NotContains(t, strings.ReplaceAll(ics, "\r\n", ""), "\n")
}
