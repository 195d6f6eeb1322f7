package scheduling

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidDateTime = errors.New("invalid date/time")
	ErrInvalidRange    = errors.New("end date/time must be after start date/time")
)

// Layouts de "hora de pared" (sin offset): se interpretan en la zona del evento.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Layouts con offset explícito: ya son un instante, la zona no aplica.
var absoluteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Schedule es el resultado normalizado: instantes en UTC + id IANA resuelto.
type Schedule struct {
	TimezoneID string
	Start      time.Time
	End        time.Time
}

type Normalizer struct {
	zones *Registry
}

func NewNormalizer(zones *Registry) *Normalizer {
	return &Normalizer{zones: zones}
}

// Normalize convierte start/end (hora local de label) a instantes absolutos.
// Orden de validación: zona, fechas, rango (end > start estricto).
func (n *Normalizer) Normalize(label, startLocal, endLocal string) (Schedule, error) {
	loc, ok := n.zones.Location(label)
	if !ok {
		return Schedule{}, ErrInvalidTimezone
	}
	id, _ := n.zones.Lookup(label)

	start, err := parseWallClock(startLocal, loc)
	if err != nil {
		return Schedule{}, err
	}
	end, err := parseWallClock(endLocal, loc)
	if err != nil {
		return Schedule{}, err
	}

	if !end.After(start) {
		return Schedule{}, ErrInvalidRange
	}

	return Schedule{TimezoneID: id, Start: start, End: end}, nil
}

// ParseLocal convierte un único valor (usado por los updates parciales).
func (n *Normalizer) ParseLocal(label, value string) (time.Time, error) {
	loc, ok := n.zones.Location(label)
	if !ok {
		return time.Time{}, ErrInvalidTimezone
	}
	return parseWallClock(value, loc)
}

func parseWallClock(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDateTime
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidDateTime
}
