package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseMeasurement parses a form field. A blank field is absent (nil, nil).
// A field that is not a finite number yields ErrInvalidNumericInput. Zero is
// a valid value and is returned as such.
func ParseMeasurement(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	return &v, nil
}

// ParseRawEntry builds a RawEntry from form strings given in units. Fields
// that fail to parse are left absent; their errors are joined and returned
// alongside the entry so lenient callers can report them and carry on.
func ParseRawEntry(date, weight, waist, neck string, units Units) (RawEntry, error) {
	raw := RawEntry{Date: strings.TrimSpace(date)}
	var errs []error

	fields := []struct {
		name string
		in   string
		dst  **float64
	}{
		{"weight", weight, &raw.Weight},
		{"waist", waist, &raw.Waist},
		{"neck", neck, &raw.Neck},
	}
	for _, f := range fields {
		v, err := ParseMeasurement(f.in)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			continue
		}
		*f.dst = v
	}
	return units.ToMetric(raw), errors.Join(errs...)
}

// Validate checks the fields an entry must satisfy before it is stored.
func (r RawEntry) Validate() error {
	if r.Date == "" {
		return NewValidationError(ErrInvalidDate, "date is required")
	}
	if _, ok := ParseDate(r.Date); !ok {
		return NewValidationError(ErrInvalidDate, fmt.Sprintf("date %q must be YYYY-MM-DD", r.Date))
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"weight", r.Weight}, {"waist", r.Waist}, {"neck", r.Neck}} {
		if f.v != nil && *f.v < 0 {
			return NewValidationError(ErrInvalidNumericInput, f.name+" must not be negative")
		}
	}
	return nil
}
