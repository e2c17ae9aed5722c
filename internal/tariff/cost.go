package tariff

// RateTable maps each period to a price per kWh, with a flat-rate price
// used as the comparison baseline. Rates come from config, not from the
// engine, so published rate changes are a config edit.
type RateTable struct {
	PerKWh   map[Period]float64
	FlatRate float64
}

// CostSummary holds the computed costs for one set of totals. All values
// are full-precision dollars; rounding to cents happens at display time
// only, so the three period costs never accumulate rounding error.
type CostSummary struct {
	ByPeriod  map[Period]float64
	TOUTotal  float64
	FlatTotal float64

	// Savings is FlatTotal minus TOUTotal. Negative means the TOU tariff
	// costs more than the flat rate, which is a valid result.
	Savings float64
}

// ComputeCost prices the aggregated usage under the TOU schedule and under
// the flat rate. Periods missing from the rate table price at zero.
func ComputeCost(totals Totals, rates RateTable) CostSummary {
	summary := CostSummary{ByPeriod: make(map[Period]float64)}

	for period, kwh := range totals.ByPeriod {
		cost := kwh * rates.PerKWh[period]
		summary.ByPeriod[period] = cost
		summary.TOUTotal += cost
	}

	summary.FlatTotal = totals.GrandKWh * rates.FlatRate
	summary.Savings = summary.FlatTotal - summary.TOUTotal

	return summary
}
