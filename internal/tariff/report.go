package tariff

import "tariffscope/pkg/models"

// Report is the full result of one analysis: usage breakdown, period
// shares, costs and the account metadata passed through from the export
// header. Built once, read-only afterwards.
type Report struct {
	Account models.Account

	UsageKWh map[Period]float64
	Share    map[Period]float64 // fraction of grand total, 0..1
	GrandKWh float64

	Cost CostSummary

	Anomalies int
}

// BuildReport combines aggregated totals, the rate table and account
// metadata into a Report. When the grand total is zero every share is 0
// rather than NaN, so an empty export still produces a clean report.
func BuildReport(account models.Account, totals Totals, rates RateTable) Report {
	report := Report{
		Account:   account,
		UsageKWh:  make(map[Period]float64),
		Share:     make(map[Period]float64),
		GrandKWh:  totals.GrandKWh,
		Cost:      ComputeCost(totals, rates),
		Anomalies: totals.Anomalies,
	}

	for period, kwh := range totals.ByPeriod {
		report.UsageKWh[period] = kwh
		if totals.GrandKWh != 0 {
			report.Share[period] = kwh / totals.GrandKWh
		} else {
			report.Share[period] = 0
		}
	}

	return report
}
