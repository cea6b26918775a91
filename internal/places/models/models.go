package models

import (
	"strings"
	"time"
)

// Place is a resolved map pin, keyed by the slug of its free-text name.
type Place struct {
	Slug      string
	Place     string
	Lat       float64
	Lng       float64
	CreatedAt time.Time
}

// View is the wire shape of a place.
type View struct {
	Slug  string  `json:"slug"`
	Place string  `json:"place"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

func (p *Place) View() View {
	return View{Slug: p.Slug, Place: p.Place, Lat: p.Lat, Lng: p.Lng}
}

type ResolveRequest struct {
	Place string `json:"place"`
}

// Slugify lowercases a place name and collapses every run of characters
// outside [a-z0-9] into a single hyphen, so "Oslo, Norway" and "oslo  norway"
// key the same cache row.
func Slugify(place string) string {
	var b strings.Builder
	b.Grow(len(place))
	pendingHyphen := false
	for _, r := range strings.ToLower(place) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
