package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tariffscope/internal/config"
	"tariffscope/internal/csvexport"
	"tariffscope/internal/tariff"
	"tariffscope/pkg/models"
)

var (
	analyzeSave   bool
	analyzeFromDB bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a usage export and compare tariff costs",
	Long: `Parses an interval usage CSV export downloaded from the utility website,
buckets every reading into its rate period, and reports usage and cost under
the time-of-use tariff versus the flat fixed rate.

With --from-db the analysis runs over readings previously stored with
'tariffscope import' instead of a CSV file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the analysis result in the database")
	analyzeCmd.Flags().BoolVar(&analyzeFromDB, "from-db", false, "Analyze readings stored in the database instead of a file")
	rootCmd.AddCommand(analyzeCmd)
}

// Display labels for the default schedule's periods
var periodLabels = map[tariff.Period]string{
	tariff.WinterPeak:    "Winter Peak Hours (Nov-Mar, 7-11 & 17-21)",
	tariff.WinterOffPeak: "Winter Off-Peak Hours (Nov-Mar, other times)",
	tariff.Summer:        "Summer Usage (Apr-Oct, all hours)",
}

func periodLabel(p tariff.Period) string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return string(p)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Collect readings from the file or the database
	var readings []models.Reading
	var account models.Account
	var sourceFile string

	if analyzeFromDB {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --from-db with a file argument")
		}

		db, err := openDB()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		readings, err = db.ListReadings()
		if err != nil {
			return fmt.Errorf("listing readings: %w", err)
		}
		sourceFile = "database"
	} else {
		if len(args) != 1 {
			return fmt.Errorf("a CSV export file is required (or use --from-db)")
		}
		sourceFile = args[0]

		export, err := csvexport.ReadFile(sourceFile)
		if err != nil {
			return fmt.Errorf("reading export: %w", err)
		}
		readings = export.Readings
		account = export.Account
	}

	// Run the engine
	schedule := tariff.DefaultSchedule()
	rates := cfg.GetRateTable()

	totals := tariff.Aggregate(schedule, readings)

	if totals.Anomalies > 0 && cfg.GetAnomalyPolicy() == config.AnomalyReject {
		return fmt.Errorf("export contains %d anomalous usage values (negative or non-finite) and anomaly_policy is %q", totals.Anomalies, config.AnomalyReject)
	}

	report := tariff.BuildReport(account, totals, rates)

	printReport(report, schedule, rates)

	if totals.Anomalies > 0 {
		fmt.Printf("\n⚠ %d readings had anomalous usage values (negative or non-finite); they are included in the totals\n", totals.Anomalies)
	}

	// Optionally record the run
	if analyzeSave {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		run := models.AnalysisRun{
			ID:            uuid.NewString(),
			CreatedAt:     time.Now().UTC(),
			SourceFile:    sourceFile,
			AccountNumber: account.AccountNumber,
			TotalKWh:      report.GrandKWh,
			TOUCost:       report.Cost.TOUTotal,
			FlatCost:      report.Cost.FlatTotal,
			Savings:       report.Cost.Savings,
		}
		if err := db.InsertRun(&run); err != nil {
			return fmt.Errorf("saving analysis run: %w", err)
		}
		fmt.Printf("\n✓ Analysis saved (run %s)\n", run.ID)
	}

	return nil
}

func printReport(report tariff.Report, schedule tariff.Schedule, rates tariff.RateTable) {
	separator := strings.Repeat("-", 60)

	// Account information from the export header, if present
	if report.Account != (models.Account{}) {
		fmt.Println("\nAccount Information:")
		fmt.Println(separator)
		if report.Account.Name != "" {
			fmt.Printf("Name: %s\n", report.Account.Name)
		}
		if report.Account.Address != "" {
			fmt.Printf("Address: %s\n", report.Account.Address)
		}
		if report.Account.AccountNumber != "" {
			fmt.Printf("Account Number: %s\n", report.Account.AccountNumber)
		}
	}

	fmt.Println("\nPower Usage Analysis Results:")
	fmt.Println(separator)
	fmt.Println("Usage Breakdown:")
	for _, period := range schedule.Periods() {
		fmt.Printf("%s: %s kWh (%.1f%%)\n",
			periodLabel(period),
			humanize.CommafWithDigits(report.UsageKWh[period], 2),
			report.Share[period]*100)
	}
	fmt.Printf("Total Usage: %s kWh\n", humanize.CommafWithDigits(report.GrandKWh, 2))

	fmt.Println("\nCost Analysis:")
	fmt.Println(separator)
	fmt.Println("Time-of-Use Rate Breakdown:")
	for _, period := range schedule.Periods() {
		fmt.Printf("%s ($%.5f/kWh): $%.2f\n",
			periodLabel(period),
			rates.PerKWh[period],
			report.Cost.ByPeriod[period])
	}
	fmt.Printf("Total Time-of-Use Cost: $%.2f\n", report.Cost.TOUTotal)

	fmt.Printf("\nFixed Rate Cost ($%.5f/kWh): $%.2f\n", rates.FlatRate, report.Cost.FlatTotal)

	if report.Cost.Savings >= 0 {
		fmt.Printf("\nTime-of-Use billing would save you: $%.2f\n", report.Cost.Savings)
	} else {
		fmt.Printf("\nFixed rate billing would save you: $%.2f\n", -report.Cost.Savings)
	}
}
