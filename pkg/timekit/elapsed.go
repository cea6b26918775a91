// Package timekit holds the pure date/time calculators behind the timers,
// calendar and gallery views: calendar-aware elapsed durations, countdowns,
// month grids, canonical date keys and stable grouping.
package timekit

import "time"

// Elapsed is a calendar-aware duration in whole years, months and days.
type Elapsed struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Countdown is a fixed-unit duration in whole days, hours and minutes.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// ElapsedBetween returns the calendar-field difference between start and now.
//
// The month count is the largest number of whole calendar months that fits
// between the two dates, where adding a month to a day past the end of the
// target month clamps to that month's last day (Jan 31 plus one month is
// Feb 28). The day count is what remains. So Jan 31 to Mar 1 is one month and
// one day, not zero months and twenty-nine days.
//
// A start after now yields the zero Elapsed.
func ElapsedBetween(start, now time.Time) Elapsed {
	from := civil(start)
	to := civil(now)
	if to.Before(from) {
		return Elapsed{}
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	for months > 0 && addMonthsClamped(from, months).After(to) {
		months--
	}
	anchor := addMonthsClamped(from, months)
	days := int(to.Sub(anchor).Hours() / 24)

	return Elapsed{
		Years:  months / 12,
		Months: months % 12,
		Days:   days,
	}
}

// CountdownTo splits the time remaining until target into whole days, hours
// and minutes, truncating toward zero. All fields are zero once now has
// reached or passed target.
func CountdownTo(target, now time.Time) Countdown {
	delta := target.Sub(now)
	if delta <= 0 {
		return Countdown{}
	}
	return Countdown{
		Days:    int(delta / (24 * time.Hour)),
		Hours:   int((delta % (24 * time.Hour)) / time.Hour),
		Minutes: int((delta % time.Hour) / time.Minute),
	}
}

// civil strips the time of day and location, keeping only the calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped adds n months to a civil date, clamping the day of month
// to the target month's length instead of normalizing into the next month.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + total/12
	month := time.Month(total%12 + 1)
	if total < 0 {
		// Go's integer division truncates toward zero; steer negative month
		// offsets into the previous year.
		year = y + (total-11)/12
		month = time.Month((total%12+12)%12 + 1)
	}
	if last := DaysInMonth(year, int(month)); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
