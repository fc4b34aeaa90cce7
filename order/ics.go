package order

import (
	"fmt"
	"strings"
	"time"
)

// PickupTimeZone is the civil time zone every pickup window is stated in.
const PickupTimeZone = "America/Chicago"

// icsLocalDateTime folds "2006-01-02" + "15:04:05" into the ICS local
// form 20060102T150405 (interpreted via the TZID parameter).
func icsLocalDateTime(date, tod string) string {
	d := strings.ReplaceAll(date, "-", "")
	parts := strings.Split(tod, ":")
	for len(parts) < 3 {
		parts = append(parts, "00")
	}
	for i, p := range parts {
		if len(p) < 2 {
			parts[i] = "0" + p
		}
	}
	return d + "T" + strings.Join(parts[:3], "")
}

// escapeICS escapes text per RFC 5545 section 3.3.11.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	return s
}

// BuildPickupICS renders a single-VEVENT calendar file for the order's
// pickup window. now feeds DTSTAMP.
func BuildPickupICS(sum *Summary, now time.Time) string {
	dtStart := icsLocalDateTime(sum.Event.PickupDate, sum.Event.PickupStart)
	dtEnd := icsLocalDateTime(sum.Event.PickupDate, sum.Event.PickupEnd)
	dtStamp := now.UTC().Format("20060102T150405Z")

	summary := "Pickup — " + sum.Event.Title
	location := sum.Event.LocationName + " — " + sum.Event.LocationAddress
	description := fmt.Sprintf("Order %s pickup for Bowl & Broth Society.", sum.ID)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Bowl & Broth Society//Order Pickup//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@bowlandbrothsociety", sum.ID),
		"DTSTAMP:" + dtStamp,
		fmt.Sprintf("DTSTART;TZID=%s:%s", PickupTimeZone, dtStart),
		fmt.Sprintf("DTEND;TZID=%s:%s", PickupTimeZone, dtEnd),
		"SUMMARY:" + escapeICS(summary),
		"DESCRIPTION:" + escapeICS(description),
		"LOCATION:" + escapeICS(location),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n")
}
