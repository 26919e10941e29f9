// Package weather defines the query and result types for current-conditions
// lookups and a client for the weatherapi.com current.json endpoint.
package weather

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// QueryKind distinguishes free-text location queries from coordinate pairs.
type QueryKind int

const (
	KindCity QueryKind = iota
	KindCoordinates
)

// String returns the lowercase name of the kind.
func (k QueryKind) String() string {
	switch k {
	case KindCity:
		return "city"
	case KindCoordinates:
		return "coordinates"
	default:
		return "unknown"
	}
}

// ErrEmptyQuery is returned by CityQuery when the text is blank after
// trimming.
var ErrEmptyQuery = errors.New("weather: empty query")

// Query is the parameter sent to a Provider. Build it with CityQuery or
// CoordinatesQuery; the zero value is an empty city query.
type Query struct {
	Kind      QueryKind
	Text      string
	Latitude  float64
	Longitude float64
}

// CityQuery returns a free-text query for text with surrounding whitespace
// removed.
func CityQuery(text string) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, ErrEmptyQuery
	}
	return Query{Kind: KindCity, Text: text}, nil
}

// CoordinatesQuery returns a query for a latitude/longitude pair.
func CoordinatesQuery(lat, lon float64) Query {
	return Query{Kind: KindCoordinates, Latitude: lat, Longitude: lon}
}

// String renders the value of the q parameter: the trimmed text, or
// "<lat>,<lon>" using the shortest float representation.
func (q Query) String() string {
	if q.Kind == KindCoordinates {
		return formatFloat(q.Latitude) + "," + formatFloat(q.Longitude)
	}
	return q.Text
}

// Result holds the current conditions for one location. Condition is empty
// when the provider did not report one.
type Result struct {
	LocationName string
	TemperatureC float64
	Condition    string
}

// HasCondition reports whether a condition description is present.
func (r Result) HasCondition() bool {
	return r.Condition != ""
}

// Temperature returns the temperature with its unit label, e.g. "18°C".
func (r Result) Temperature() string {
	return FormatTemperature(r.TemperatureC)
}

// FormatTemperature renders a Celsius value with its unit label. The value
// is not rounded.
func FormatTemperature(c float64) string {
	return formatFloat(c) + "°C"
}

// Provider returns the current conditions for a query.
type Provider interface {
	Current(ctx context.Context, q Query) (Result, error)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
