package weather

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMissingParameters is returned when a query names neither a usable
// coordinate pair nor a usable place. No outbound call is made in that case.
var ErrMissingParameters = errors.New("no required parameters were passed")

// Query identifies the place to fetch weather for. Either Lat+Lon or
// City plus at least one of State/Country must be set; coordinates win
// when both forms are present.
type Query struct {
	Lat     string
	Lon     string
	City    string
	State   string
	Country string
}

// values builds the provider query string according to the selection rule.
func (q Query) values() (url.Values, error) {
	v := url.Values{}

	switch {
	case q.Lat != "" && q.Lon != "":
		v.Set("lat", q.Lat)
		v.Set("lon", q.Lon)
	case q.City != "" && (q.State != "" || q.Country != ""):
		place := q.City
		if q.State != "" {
			place += "," + q.State
		}
		if q.Country != "" {
			place += "," + q.Country
		}
		v.Set("q", place)
	default:
		return nil, ErrMissingParameters
	}

	return v, nil
}

// Location is a place the system tracks weather for. Coordinates are
// optional in configuration and may be resolved later by geocoding.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"latitude,omitempty"`
	Lon     *float64 `json:"longitude,omitempty"`
}

// Key returns a canonical string key for logging and indexing.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%s", l.City, l.Country)
}
