package service

import "keepsake/internal/places/models"

// wellKnown answers the handful of places the couple visits most without
// bothering the external geocoder. Keyed by slug.
var wellKnown = map[string]models.Place{
	"oslo":          {Slug: "oslo", Place: "Oslo", Lat: 59.9133301, Lng: 10.7389701},
	"oslo-norway":   {Slug: "oslo-norway", Place: "Oslo, Norway", Lat: 59.9133301, Lng: 10.7389701},
	"tokyo":         {Slug: "tokyo", Place: "Tokyo", Lat: 35.6768601, Lng: 139.7638947},
	"tokyo-japan":   {Slug: "tokyo-japan", Place: "Tokyo, Japan", Lat: 35.6768601, Lng: 139.7638947},
	"osaka":         {Slug: "osaka", Place: "Osaka", Lat: 34.6937569, Lng: 135.5014539},
	"london":        {Slug: "london", Place: "London", Lat: 51.5074456, Lng: -0.1277653},
	"paris":         {Slug: "paris", Place: "Paris", Lat: 48.8588897, Lng: 2.3200410},
	"new-york":      {Slug: "new-york", Place: "New York", Lat: 40.7127281, Lng: -74.0060152},
	"san-francisco": {Slug: "san-francisco", Place: "San Francisco", Lat: 37.7790262, Lng: -122.4199061},
	"berlin":        {Slug: "berlin", Place: "Berlin", Lat: 52.5170365, Lng: 13.3888599},
}
