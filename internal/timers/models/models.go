package models

import (
	"time"

	id "keepsake/pkg/domain"
	"keepsake/pkg/timekit"
)

// Kind selects how a timer's date is interpreted.
type Kind string

const (
	// KindElapsed counts up from the date (anniversaries, "together for").
	KindElapsed Kind = "elapsed"
	// KindCountdown counts down to the date (next meetup).
	KindCountdown Kind = "countdown"
)

func (k Kind) Valid() bool {
	return k == KindElapsed || k == KindCountdown
}

// Timer is a stored timer document. Date is the calendar day the timer is
// anchored to, held at midnight in the reference zone.
type Timer struct {
	ID        id.TimerID
	Kind      Kind
	Label     string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is the wire shape of a timer.
type View struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	Date  string `json:"date"`
}

func (t *Timer) View(loc *time.Location) View {
	return View{
		ID:    t.ID.String(),
		Kind:  t.Kind,
		Label: t.Label,
		Date:  timekit.DateKey(t.Date, loc),
	}
}

// Status is a timer plus its value at the request's "now": exactly one of
// Elapsed or Countdown is set, matching Kind.
type Status struct {
	View
	Elapsed   *timekit.Elapsed   `json:"elapsed,omitempty"`
	Countdown *timekit.Countdown `json:"countdown,omitempty"`
}

type CreateRequest struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	Date  string `json:"date"`
}

type UpdateRequest struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}
