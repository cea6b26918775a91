package timekit

import (
	"time"

	dErrors "keepsake/pkg/domain-errors"
)

// DateKeyLayout is the canonical YYYY-MM-DD document key format shared by
// events, photos and calendar views.
const DateKeyLayout = "2006-01-02"

// noonHour is the assumed time of day for photos without one, keeping them
// ordered between morning and evening shots of the same date.
const noonHour = 12

// DateKey renders the calendar date of t, resolved in loc, as a zero-padded
// YYYY-MM-DD key. Every feature derives keys through this function with the
// same configured reference zone, so two instants on the same calendar day
// always key identically. A nil loc keeps t's own zone.
func DateKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a canonical date key into the midnight instant of that
// date in loc (UTC when nil). Non-canonical spellings such as "2025-2-3" are
// rejected.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil || t.Format(DateKeyLayout) != key {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "invalid date key: "+key)
	}
	return t, nil
}

// CombineDateTime derives a single instant from a date key and an optional
// HH:mm time of day, resolved in loc. An absent time defaults to noon.
func CombineDateTime(dateKey, hhmm string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := ParseDateKey(dateKey, loc)
	if err != nil {
		return time.Time{}, err
	}
	if hhmm == "" {
		return day.Add(noonHour * time.Hour), nil
	}
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "invalid time of day: "+hhmm)
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}
