package models

import "time"

// Reading represents a single interval usage reading from a utility export.
// Timestamp is the interval start in the export's local time.
type Reading struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	KWh       float64   `json:"kwh"`
}

// Account holds the account metadata from the export file header.
// The values are opaque strings, passed through to the report as-is.
type Account struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	AccountNumber string `json:"account_number"`
}

// AnalysisRun is a stored result of one analyze invocation
type AnalysisRun struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	SourceFile    string    `json:"source_file"`
	AccountNumber string    `json:"account_number"`
	TotalKWh      float64   `json:"total_kwh"`
	TOUCost       float64   `json:"tou_cost"`
	FlatCost      float64   `json:"flat_cost"`
	Savings       float64   `json:"savings"`
}
