package weather

import (
	"log"

	"github.com/kelvins/geocoder"
)

// ResolveCoordinates fills in missing coordinates for the given locations by
// geocoding their city/country. Locations that already carry coordinates are
// left alone; failed lookups are logged and the location kept unresolved so
// callers can decide whether an unresolved entry is usable. Without an API
// key nothing is resolved.
func ResolveCoordinates(apiKey string, locations []Location) []Location {
	if apiKey == "" {
		return locations
	}
	geocoder.ApiKey = apiKey

	out := make([]Location, 0, len(locations))
	for _, loc := range locations {
		if loc.Lat != nil && loc.Lon != nil {
			out = append(out, loc)
			continue
		}

		coords, err := geocoder.Geocoding(geocoder.Address{
			City:    loc.City,
			Country: loc.Country,
		})
		if err != nil {
			log.Printf("weather: geocoding %s failed: %v", loc.Key(), err)
			out = append(out, loc)
			continue
		}

		lat, lon := coords.Latitude, coords.Longitude
		loc.Lat = &lat
		loc.Lon = &lon
		out = append(out, loc)
	}
	return out
}
