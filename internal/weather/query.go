// Package weather implements the OpenWeatherMap adaptation layer: query
// validation, upstream parameter building, and the HTTP client.
package weather

import (
	"fmt"
)

// Units is the measurement system requested by the caller.
// Maps 1:1 onto the OpenWeatherMap "units" query parameter.
type Units string

const (
	UnitsStandard Units = "standard" // Kelvin, m/s
	UnitsMetric   Units = "metric"   // Celsius, m/s
	UnitsImperial Units = "imperial" // Fahrenheit, mph
)

// DefaultUnits is used when the caller does not specify units.
const DefaultUnits = UnitsMetric

// Valid reports whether u is a known measurement system.
func (u Units) Valid() bool {
	switch u {
	case UnitsStandard, UnitsMetric, UnitsImperial:
		return true
	}
	return false
}

// Coordinates is a validated latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Query is the caller-supplied location request. Either City or both
// coordinate pointers must be set. Nil pointers distinguish "not provided"
// from a legitimate 0.0 coordinate.
type Query struct {
	City      string
	Latitude  *float64
	Longitude *float64
	Units     Units
	Lang      string
}

// ValidationError describes rejected caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Normalize fills in defaults for optional fields.
func (q *Query) Normalize() {
	if q.Units == "" {
		q.Units = DefaultUnits
	}
}

// Validate checks the city-or-coordinates invariant and coordinate ranges.
// Callers should Normalize first; an empty Units is still rejected here.
func (q *Query) Validate() error {
	hasCity := q.City != ""
	hasCoords := q.Latitude != nil && q.Longitude != nil

	if !hasCity && !hasCoords {
		if q.Latitude != nil || q.Longitude != nil {
			return &ValidationError{
				Field:   "location",
				Message: "latitude and longitude must be provided together",
			}
		}
		return &ValidationError{
			Field:   "location",
			Message: "either city or both latitude and longitude are required",
		}
	}

	if q.Latitude != nil {
		if lat := *q.Latitude; lat < -90 || lat > 90 {
			return &ValidationError{
				Field:   "latitude",
				Message: fmt.Sprintf("%v is outside [-90, 90]", lat),
			}
		}
	}
	if q.Longitude != nil {
		if lon := *q.Longitude; lon < -180 || lon > 180 {
			return &ValidationError{
				Field:   "longitude",
				Message: fmt.Sprintf("%v is outside [-180, 180]", lon),
			}
		}
	}

	if !q.Units.Valid() {
		return &ValidationError{
			Field:   "units",
			Message: fmt.Sprintf("%q is not one of standard, metric, imperial", q.Units),
		}
	}

	return nil
}

// Coords returns the coordinate pair when both values were supplied.
func (q *Query) Coords() (Coordinates, bool) {
	if q.Latitude == nil || q.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *q.Latitude, Longitude: *q.Longitude}, true
}
