package timekit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsedBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  Elapsed
	}{
		{
			name:  "same instant is zero",
			start: date(2025, time.April, 4),
			now:   date(2025, time.April, 4),
			want:  Elapsed{},
		},
		{
			name:  "start in the future clamps to zero",
			start: date(2026, time.January, 1),
			now:   date(2025, time.January, 1),
			want:  Elapsed{},
		},
		{
			name:  "plain day difference",
			start: date(2025, time.April, 4),
			now:   date(2025, time.April, 14),
			want:  Elapsed{Days: 10},
		},
		{
			name:  "end of month borrows from the actual previous month",
			start: date(2025, time.January, 31),
			now:   date(2025, time.March, 1),
			want:  Elapsed{Months: 1, Days: 1},
		},
		{
			name:  "thirty-one day start into thirty day month",
			start: date(2025, time.March, 31),
			now:   date(2025, time.May, 1),
			want:  Elapsed{Months: 1, Days: 1},
		},
		{
			name:  "full year rollover",
			start: date(2024, time.June, 15),
			now:   date(2025, time.June, 15),
			want:  Elapsed{Years: 1},
		},
		{
			name:  "months borrow a year",
			start: date(2024, time.November, 20),
			now:   date(2025, time.February, 10),
			want:  Elapsed{Months: 2, Days: 21},
		},
		{
			name:  "leap day to the following March",
			start: date(2024, time.February, 29),
			now:   date(2024, time.March, 29),
			want:  Elapsed{Months: 1},
		},
		{
			name:  "anniversary style multi year span",
			start: date(2025, time.April, 4),
			now:   date(2027, time.July, 9),
			want:  Elapsed{Years: 2, Months: 3, Days: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedBetween(tt.start, tt.now))
		})
	}
}

func TestElapsedBetween_NeverNegative(t *testing.T) {
	// Walk a troublesome end-of-month start across two years of nows.
	start := date(2025, time.January, 31)
	for now := start; now.Before(date(2027, time.February, 1)); now = now.AddDate(0, 0, 1) {
		got := ElapsedBetween(start, now)
		assert.GreaterOrEqual(t, got.Years, 0, "years at %s", now)
		assert.GreaterOrEqual(t, got.Months, 0, "months at %s", now)
		assert.GreaterOrEqual(t, got.Days, 0, "days at %s", now)
		assert.Less(t, got.Months, 12, "months at %s", now)
	}
}

func TestElapsedBetween_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.April, 4, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, time.April, 5, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, Elapsed{Days: 1}, ElapsedBetween(start, now))
}

func TestCountdownTo(t *testing.T) {
	target := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	t.Run("splits into days hours minutes", func(t *testing.T) {
		now := target.Add(-(49*time.Hour + 30*time.Minute + 59*time.Second))
		assert.Equal(t, Countdown{Days: 2, Hours: 1, Minutes: 30}, CountdownTo(target, now))
	})

	t.Run("truncates instead of rounding up", func(t *testing.T) {
		now := target.Add(-(time.Minute + 59*time.Second))
		assert.Equal(t, Countdown{Minutes: 1}, CountdownTo(target, now))
	})

	t.Run("zero at the target", func(t *testing.T) {
		assert.Equal(t, Countdown{}, CountdownTo(target, target))
	})

	t.Run("zero past the target", func(t *testing.T) {
		assert.Equal(t, Countdown{}, CountdownTo(target, target.Add(36*time.Hour)))
	})
}

func TestCountdownTo_MonotonicallyNonIncreasing(t *testing.T) {
	target := time.Date(2025, time.July, 9, 12, 0, 0, 0, time.UTC)
	prev := CountdownTo(target, target.Add(-96*time.Hour))
	for now := target.Add(-96 * time.Hour); now.Before(target.Add(2 * time.Hour)); now = now.Add(17 * time.Minute) {
		got := CountdownTo(target, now)
		prevTotal := (prev.Days*24+prev.Hours)*60 + prev.Minutes
		gotTotal := (got.Days*24+got.Hours)*60 + got.Minutes
		assert.LessOrEqual(t, gotTotal, prevTotal, "at %s", now)
		prev = got
	}
}
