package transfer_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bodycomp/internal/domain"
	"bodycomp/internal/transfer"
)

func ptr(v float64) *float64 { return &v }

func sample() []domain.Entry {
	return []domain.Entry{
		domainEntry("a", domain.Derive(domain.RawEntry{Date: "2024-01-01", Weight: ptr(80), Waist: ptr(85), Neck: ptr(38)})),
		{ID: "b", Date: "2024-01-08", Weight: ptr(79.44)},
		{ID: "c", Date: "2024-01-15", Weight: ptr(0)},
	}
}

func domainEntry(id string, e domain.Entry) domain.Entry {
	e.ID = id
	return e
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := transfer.WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := strings.Join([]string{
		"Date,Weight (kg),Waist (cm),Neck (cm),Body Fat %,Fat-Free Mass (kg)",
		"2024-01-01,80.0,85.0,38.0,14.83,68.14",
		"2024-01-08,79.4,,,,",
		"2024-01-15,0.0,,,,",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := transfer.Write(&buf, transfer.FormatCSV, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := transfer.Write(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRow(t *testing.T) {
	row := transfer.Row(domain.Entry{Date: "2024-01-01", Neck: ptr(38.26)}, transfer.NotAvailable)
	want := []string{"2024-01-01", "N/A", "N/A", "38.3", "N/A", "N/A"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row = %q; want %q", row, want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := transfer.WriteJSON(&buf, sample()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := transfer.DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	want := sample()
	if len(got) != len(want) {
		t.Fatalf("len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Date != want[i].Date {
			t.Errorf("entry %d = %+v", i, got[i])
		}
		if !samePtr(got[i].Weight, want[i].Weight) || !samePtr(got[i].Waist, want[i].Waist) ||
			!samePtr(got[i].Neck, want[i].Neck) || !samePtr(got[i].BodyFatPercentage, want[i].BodyFatPercentage) ||
			!samePtr(got[i].FatFreeMass, want[i].FatFreeMass) {
			t.Errorf("entry %d values differ: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := transfer.WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("got %q", buf.String())
	}
}

func samePtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestDecodeJSON_Accepts(t *testing.T) {
	in := `[
		{"date": "2024-01-01", "weight": 80, "waist": null, "extra": "ignored"},
		{"date": "someday"}
	]`
	got, err := transfer.DecodeJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(got) != 2 || *got[0].Weight != 80 || got[0].Waist != nil || got[1].Date != "someday" {
		t.Fatalf("got %+v", got)
	}
	if got[0].ID != "" {
		t.Errorf("missing id should stay empty, got %q", got[0].ID)
	}
}

func TestDecodeJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "Date,Weight\n2024-01-01,80"},
		{"object", `{"date":"2024-01-01"}`},
		{"null", `null`},
		{"array of numbers", `[1, 2]`},
		{"array of arrays", `[["2024-01-01"]]`},
		{"missing date", `[{"weight": 80}]`},
		{"empty date", `[{"date": ""}]`},
		{"numeric date", `[{"date": 20240101}]`},
		{"string weight", `[{"date": "2024-01-01", "weight": "80"}]`},
		{"null record", `[null]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := transfer.DecodeJSON(strings.NewReader(tc.in))
			if !errors.Is(err, domain.ErrInvalidImportFormat) {
				t.Fatalf("expected ErrInvalidImportFormat, got %v", err)
			}
		})
	}
}

func TestDecodeJSON_EmptyArray(t *testing.T) {
	got, err := transfer.DecodeJSON(strings.NewReader(" [] "))
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	if err := os.WriteFile(path, []byte(`[{"date":"2024-01-01","weight":80}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := transfer.ReadFile(path)
	if err != nil || len(got) != 1 {
		t.Fatalf("ReadFile: %v %v", got, err)
	}

	_, err = transfer.ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, domain.ErrFileRead) {
		t.Fatalf("expected ErrFileRead, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	if transfer.Filename(transfer.FormatCSV) != "body_fat_tracker_data.csv" {
		t.Error("csv filename")
	}
	if transfer.Filename(transfer.FormatJSON) != "body_fat_tracker_data.json" {
		t.Error("json filename")
	}
}
