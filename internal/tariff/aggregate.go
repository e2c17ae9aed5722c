package tariff

import (
	"math"

	"tariffscope/pkg/models"
)

// Totals holds accumulated energy per rate period
type Totals struct {
	ByPeriod map[Period]float64
	GrandKWh float64

	// Anomalies counts readings with negative or non-finite energy.
	// Those readings are still included in the sums; the utility's export
	// is trusted and excluding rows would skew the grand total. Callers
	// decide whether to warn or abort.
	Anomalies int
}

// Aggregate folds readings into per-period totals using the schedule.
// Input order does not matter and duplicate timestamps are summed, not
// deduplicated: each row is an independent usage delta. An empty input
// yields zero totals.
func Aggregate(s Schedule, readings []models.Reading) Totals {
	totals := Totals{ByPeriod: make(map[Period]float64)}
	for _, p := range s.Periods() {
		totals.ByPeriod[p] = 0
	}

	for _, r := range readings {
		if r.KWh < 0 || math.IsNaN(r.KWh) || math.IsInf(r.KWh, 0) {
			totals.Anomalies++
		}
		period := s.Classify(r.Timestamp)
		totals.ByPeriod[period] += r.KWh
		totals.GrandKWh += r.KWh
	}

	return totals
}
