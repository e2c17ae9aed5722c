package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tariffscope/internal/csvexport"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a usage export into the local database",
	Long: `Parses an interval usage CSV export and stores its readings in the local
SQLite database. Duplicate timestamps are skipped, so re-importing an
overlapping export is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Import started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	export, err := csvexport.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading export: %w", err)
	}

	if len(export.Readings) == 0 {
		fmt.Println("No readings found in export")
		return nil
	}

	// Open database
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Store readings (duplicates will be ignored by UNIQUE constraint)
	for _, reading := range export.Readings {
		if err := db.InsertReading(&reading); err != nil {
			return fmt.Errorf("inserting reading: %w", err)
		}
	}

	fmt.Printf("✓ Processed %d readings (duplicates automatically skipped by database)\n", len(export.Readings))
	return nil
}
