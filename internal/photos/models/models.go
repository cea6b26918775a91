package models

import (
	"time"

	id "keepsake/pkg/domain"
)

// Photo is gallery metadata. The image itself lives in external object
// storage; URL is the public location and Path the storage key.
type Photo struct {
	ID       id.PhotoID
	URL      string
	Path     string
	Caption  string
	Date     string
	Place    string
	Time     string
	TakenAt  time.Time
	Uploaded time.Time
}

// View is the wire shape of a photo.
type View struct {
	ID      string    `json:"id"`
	URL     string    `json:"url"`
	Path    string    `json:"path"`
	Caption string    `json:"caption,omitempty"`
	Date    string    `json:"date"`
	Place   string    `json:"place,omitempty"`
	Time    string    `json:"time,omitempty"`
	TakenAt time.Time `json:"takenAt"`
}

func (p *Photo) View() View {
	return View{
		ID:      p.ID.String(),
		URL:     p.URL,
		Path:    p.Path,
		Caption: p.Caption,
		Date:    p.Date,
		Place:   p.Place,
		Time:    p.Time,
		TakenAt: p.TakenAt,
	}
}

type CreateRequest struct {
	URL     string `json:"url"`
	Path    string `json:"path"`
	Caption string `json:"caption"`
	Date    string `json:"date"`
	Place   string `json:"place"`
	Time    string `json:"time"`
}

type UpdateRequest struct {
	Caption *string `json:"caption"`
	Place   *string `json:"place"`
}

// DateGroup is one day of the gallery's by-date view.
type DateGroup struct {
	Date   string `json:"date"`
	Photos []View `json:"photos"`
}

// PlaceGroup is one city of the gallery's by-place view. Display carries the
// first-seen casing of the city name.
type PlaceGroup struct {
	Place  string `json:"place"`
	Photos []View `json:"photos"`
}
