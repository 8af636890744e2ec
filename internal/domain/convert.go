package domain

const kgToLb = 2.2046226218

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return v * kgToLb
	}
	if from == "lb" && to == "kg" {
		return v / kgToLb
	}
	return v
}

// ConvertLength converts a length value between "cm" and "in".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertLength(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "cm" && to == "in" {
		return v / cmPerInch
	}
	if from == "in" && to == "cm" {
		return v * cmPerInch
	}
	return v
}

// Units names the units a form was filled in with.
type Units string

const (
	// Metric is kilograms and centimeters, the storage units.
	Metric Units = "metric"
	// Imperial is pounds and inches.
	Imperial Units = "imperial"
)

// Valid reports whether u is a known unit system. The empty value means Metric.
func (u Units) Valid() bool {
	return u == "" || u == Metric || u == Imperial
}

// ToMetric converts the measured fields of raw from u into kg and cm.
func (u Units) ToMetric(raw RawEntry) RawEntry {
	if u != Imperial {
		return raw
	}
	out := raw
	out.Weight = convertPtr(raw.Weight, func(v float64) float64 { return ConvertWeight(v, "lb", "kg") })
	out.Waist = convertPtr(raw.Waist, func(v float64) float64 { return ConvertLength(v, "in", "cm") })
	out.Neck = convertPtr(raw.Neck, func(v float64) float64 { return ConvertLength(v, "in", "cm") })
	return out
}

func convertPtr(v *float64, fn func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	c := fn(*v)
	return &c
}
