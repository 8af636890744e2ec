package domain_test

import (
	"errors"
	"testing"

	"bodycomp/internal/domain"
)

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"0", ptr(0), false},
		{"80.5", ptr(80.5), false},
		{" 38 ", ptr(38), false},
		{"abc", nil, true},
		{"1,5", nil, true},
		{"NaN", nil, true},
		{"Inf", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := domain.ParseMeasurement(tc.in)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidNumericInput) {
					t.Fatalf("expected ErrInvalidNumericInput, got %v", err)
				}
				if got != nil {
					t.Fatalf("expected nil value on error, got %v", *got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Fatalf("got %v; want %v", got, tc.want)
			}
		})
	}
}

func TestParseRawEntry_Lenient(t *testing.T) {
	raw, err := domain.ParseRawEntry(" 2024-01-01 ", "80", "eighty-five", "38", domain.Metric)
	if !errors.Is(err, domain.ErrInvalidNumericInput) {
		t.Fatalf("expected ErrInvalidNumericInput, got %v", err)
	}
	if raw.Date != "2024-01-01" {
		t.Errorf("date = %q", raw.Date)
	}
	if raw.Weight == nil || *raw.Weight != 80 {
		t.Errorf("weight = %v", raw.Weight)
	}
	if raw.Waist != nil {
		t.Errorf("waist should be absent after a parse failure, got %v", *raw.Waist)
	}
	if raw.Neck == nil || *raw.Neck != 38 {
		t.Errorf("neck = %v", raw.Neck)
	}
}

func TestParseRawEntry_Imperial(t *testing.T) {
	raw, err := domain.ParseRawEntry("2024-01-01", "", "40", "15", domain.Imperial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Weight != nil {
		t.Error("blank weight should stay absent")
	}
	if !almostEqual(*raw.Waist, 101.6, 0.0001) || !almostEqual(*raw.Neck, 38.1, 0.0001) {
		t.Errorf("got waist=%v neck=%v", *raw.Waist, *raw.Neck)
	}
}

func TestRawEntryValidate(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawEntry
		kind error
	}{
		{"ok", domain.RawEntry{Date: "2024-01-01", Weight: ptr(0)}, nil},
		{"missing date", domain.RawEntry{}, domain.ErrInvalidDate},
		{"bad date", domain.RawEntry{Date: "01/02/2024"}, domain.ErrInvalidDate},
		{"impossible date", domain.RawEntry{Date: "2024-02-30"}, domain.ErrInvalidDate},
		{"negative neck", domain.RawEntry{Date: "2024-01-01", Neck: ptr(-1)}, domain.ErrInvalidNumericInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.raw.Validate()
			if tc.kind == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
		})
	}
}
