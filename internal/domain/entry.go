// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// DateLayout is the calendar-date format used as the natural key of an Entry.
const DateLayout = "2006-01-02"

// RawEntry is a measurement as entered, before derivation.
type RawEntry struct {
	Date   string
	Weight *float64 // kg
	Waist  *float64 // cm
	Neck   *float64 // cm
}

// Entry is one dated measurement plus its derived fields.
type Entry struct {
	ID                string   `json:"id"`
	Date              string   `json:"date"`
	Weight            *float64 `json:"weight"`
	Waist             *float64 `json:"waist"`
	Neck              *float64 `json:"neck"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	FatFreeMass       *float64 `json:"fatFreeMass"`
}

// Raw returns the measured fields of e.
func (e Entry) Raw() RawEntry {
	return RawEntry{Date: e.Date, Weight: e.Weight, Waist: e.Waist, Neck: e.Neck}
}

// ParseDate parses an entry date. The boolean is false for dates that do not
// follow DateLayout.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BlobStore is the port for the opaque string-keyed blob store the entry
// collection is persisted in. GetBlob returns nil, nil for a missing key.
// PutBlob replaces the whole value atomically; last write wins.
type BlobStore interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, data []byte) error
}
