package transfer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"bodycomp/internal/domain"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// CSVFilename is the suggested name of a CSV export.
const CSVFilename = "body_fat_tracker_data.csv"

// JSONFilename is the suggested name of a JSON export.
const JSONFilename = "body_fat_tracker_data.json"

// CSVHeader is the fixed header row of a CSV export.
var CSVHeader = []string{"Date", "Weight (kg)", "Waist (cm)", "Neck (cm)", "Body Fat %", "Fat-Free Mass (kg)"}

// Row returns the display cells of e, using missing for absent values.
func Row(e domain.Entry, missing string) []string {
	return []string{
		e.Date,
		Linear(e.Weight, missing),
		Linear(e.Waist, missing),
		Linear(e.Neck, missing),
		Derived(e.BodyFatPercentage, missing),
		Derived(e.FatFreeMass, missing),
	}
}

// WriteCSV writes entries as comma-separated rows under CSVHeader. Absent
// values are empty fields.
func WriteCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(Row(e, "")); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes entries as an indented JSON array at full precision.
func WriteJSON(w io.Writer, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// Write writes entries in the named format.
func Write(w io.Writer, format string, entries []domain.Entry) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatJSON:
		return WriteJSON(w, entries)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Filename returns the suggested file name for format.
func Filename(format string) string {
	if format == FormatJSON {
		return JSONFilename
	}
	return CSVFilename
}
