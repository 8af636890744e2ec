package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bodycomp/internal/domain"
)

// record mirrors domain.Entry with every field optional so that shape
// problems can be told apart from absent values.
type record struct {
	ID                *string  `json:"id"`
	Date              *string  `json:"date"`
	Weight            *float64 `json:"weight"`
	Waist             *float64 `json:"waist"`
	Neck              *float64 `json:"neck"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	FatFreeMass       *float64 `json:"fatFreeMass"`
}

// DecodeJSON reads an array of entry records. The content must be a JSON
// array of objects, each with a string date and numeric or null
// measurements; anything else is ErrInvalidImportFormat. Unknown keys are
// ignored.
func DecodeJSON(r io.Reader) ([]domain.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileRead, err)
	}
	return decode(data)
}

func decode(data []byte) ([]domain.Entry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of entries", domain.ErrInvalidImportFormat)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of entries", domain.ErrInvalidImportFormat)
	}

	out := make([]domain.Entry, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("%w: record %d is not an object", domain.ErrInvalidImportFormat, i)
		}
		var rec record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrInvalidImportFormat, i, err)
		}
		if rec.Date == nil || *rec.Date == "" {
			return nil, fmt.Errorf("%w: record %d has no date", domain.ErrInvalidImportFormat, i)
		}
		e := domain.Entry{
			Date:              *rec.Date,
			Weight:            rec.Weight,
			Waist:             rec.Waist,
			Neck:              rec.Neck,
			BodyFatPercentage: rec.BodyFatPercentage,
			FatFreeMass:       rec.FatFreeMass,
		}
		if rec.ID != nil {
			e.ID = *rec.ID
		}
		out = append(out, e)
	}
	return out, nil
}

// ReadFile reads a whole import file and decodes it. Access failures are
// ErrFileRead.
func ReadFile(path string) ([]domain.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileRead, err)
	}
	return decode(data)
}
