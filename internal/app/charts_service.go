package app

// ChartsService builds chart data from the entry collection.
type ChartsService struct {
	entries *EntryService
}

// NewChartsService creates a ChartsService reading from entries.
func NewChartsService(entries *EntryService) *ChartsService {
	return &ChartsService{entries: entries}
}

// Axis ranges of the two chart series.
var (
	BodyFatRange     = [2]float64{10, 25}
	FatFreeMassRange = [2]float64{60, 80}
)

// Chart is two parallel series over a shared, ordered date axis. A missing
// value is nil and renders as a gap.
type Chart struct {
	Dates            []string   `json:"dates"`
	BodyFat          []*float64 `json:"bodyFat"`
	FatFreeMass      []*float64 `json:"fatFreeMass"`
	BodyFatRange     [2]float64 `json:"bodyFatRange"`
	FatFreeMassRange [2]float64 `json:"fatFreeMassRange"`
}

// Series returns the body-fat and fat-free-mass series in date order.
func (s *ChartsService) Series() Chart {
	entries := s.entries.List()
	c := Chart{
		Dates:            make([]string, 0, len(entries)),
		BodyFat:          make([]*float64, 0, len(entries)),
		FatFreeMass:      make([]*float64, 0, len(entries)),
		BodyFatRange:     BodyFatRange,
		FatFreeMassRange: FatFreeMassRange,
	}
	for _, e := range entries {
		c.Dates = append(c.Dates, e.Date)
		c.BodyFat = append(c.BodyFat, e.BodyFatPercentage)
		c.FatFreeMass = append(c.FatFreeMass, e.FatFreeMass)
	}
	return c
}
