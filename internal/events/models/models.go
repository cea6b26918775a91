package models

import (
	"time"

	"keepsake/pkg/timekit"
)

// Event is the emoji calendar entry for one day, keyed by its date. The
// record is replaced wholesale on every write: last write wins.
type Event struct {
	Date      string
	Emojis    []string
	Notes     string
	UpdatedAt time.Time
}

// View is the wire shape of an event.
type View struct {
	Date   string   `json:"date"`
	Emojis []string `json:"emojis"`
	Notes  string   `json:"notes,omitempty"`
}

func (e *Event) View() View {
	emojis := e.Emojis
	if emojis == nil {
		emojis = []string{}
	}
	return View{Date: e.Date, Emojis: emojis, Notes: e.Notes}
}

// Empty reports whether the event carries no content and should therefore be
// deleted rather than stored.
func (e *Event) Empty() bool {
	return len(e.Emojis) == 0 && e.Notes == ""
}

type UpsertRequest struct {
	Emojis []string `json:"emojis"`
	Notes  string   `json:"notes"`
}

// MonthView is one calendar month: grid cells for rendering plus the events
// that fall inside it.
type MonthView struct {
	Year   int            `json:"year"`
	Month  int            `json:"month"`
	Cells  []timekit.Cell `json:"cells"`
	Events []View         `json:"events"`
}
