package domain

import "math"

// HeightCM is the fixed body height used by the Navy method.
const HeightCM = 188.0

const cmPerInch = 2.54

// Derive applies the U.S. Navy circumference method (male formula, inch
// based) to raw and returns the resulting entry. It never fails: when the
// body-fat percentage cannot be computed it is left nil, and fat-free mass
// follows it.
func Derive(raw RawEntry) Entry {
	e := Entry{
		Date:   raw.Date,
		Weight: raw.Weight,
		Waist:  raw.Waist,
		Neck:   raw.Neck,
	}
	if raw.Waist != nil && raw.Neck != nil {
		e.BodyFatPercentage = navyBodyFat(*raw.Waist, *raw.Neck, HeightCM)
	}
	if raw.Weight != nil && e.BodyFatPercentage != nil {
		ffm := *raw.Weight * (1 - *e.BodyFatPercentage/100)
		if isFinite(ffm) {
			e.FatFreeMass = &ffm
		}
	}
	return e
}

// DeriveStrict is Derive that also reports circumferences the formula
// cannot use (waist not larger than neck).
func DeriveStrict(raw RawEntry) (Entry, error) {
	e := Derive(raw)
	if raw.Waist != nil && raw.Neck != nil && e.BodyFatPercentage == nil {
		return e, NewValidationError(ErrInvalidCircumference, "waist must be larger than neck")
	}
	return e, nil
}

func navyBodyFat(waistCM, neckCM, heightCM float64) *float64 {
	waistIn := waistCM / cmPerInch
	neckIn := neckCM / cmPerInch
	heightIn := heightCM / cmPerInch

	diff := waistIn - neckIn
	if !(diff > 0) {
		return nil
	}
	bf := 86.010*math.Log10(diff) - 70.041*math.Log10(heightIn) + 36.76
	if !isFinite(bf) {
		return nil
	}
	return &bf
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
