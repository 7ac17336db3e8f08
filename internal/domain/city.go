package domain

import "strings"

// DefaultCity is the active city before the user picks one.
const DefaultCity = "Paris"

const defaultZoom = 12

// City is a named location bucket offers are grouped under.
type City struct {
	ID       string
	Name     string
	Location CityLocation
}

// CityLocation is the map center and zoom for a city.
type CityLocation struct {
	Latitude  float64
	Longitude float64
	Zoom      int
}

// CityID derives the routing key for a city name.
func CityID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCity builds a City with its ID derived from name.
func NewCity(name string, lat, lng float64) City {
	return City{
		ID:       CityID(name),
		Name:     strings.TrimSpace(name),
		Location: CityLocation{Latitude: lat, Longitude: lng, Zoom: defaultZoom},
	}
}

var cities = []City{
	NewCity("Paris", 48.85661, 2.351499),
	NewCity("Cologne", 50.938361, 6.959974),
	NewCity("Brussels", 50.846557, 4.351697),
	NewCity("Amsterdam", 52.37454, 4.897976),
	NewCity("Hamburg", 53.550341, 10.000654),
	NewCity("Dusseldorf", 51.225402, 6.776314),
}

// Cities returns the fixed city catalog in display order.
func Cities() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

// FindCity looks up a catalog city by ID or name, case-insensitively.
func FindCity(key string) (City, bool) {
	id := CityID(key)
	for _, c := range cities {
		if c.ID == id {
			return c, true
		}
	}
	return City{}, false
}
