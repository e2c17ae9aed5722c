package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listRuns bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored readings or analysis runs",
	Long:  `Displays the interval readings stored in the database, or past analysis runs with --runs.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listRuns, "runs", false, "List saved analysis runs instead of readings")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	// Open database
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if listRuns {
		runs, err := db.ListRuns()
		if err != nil {
			return fmt.Errorf("listing analysis runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No analysis runs found")
			return nil
		}

		fmt.Println("\nAnalysis Runs:")
		fmt.Println("--------------------------------------------------------------------------------")
		fmt.Printf("%-20s  %12s  %10s  %10s  %10s\n", "Date", "Total kWh", "TOU Cost", "Flat Cost", "Savings")
		fmt.Println("--------------------------------------------------------------------------------")
		for _, run := range runs {
			fmt.Printf("%-20s  %12s  %10.2f  %10.2f  %10.2f\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"),
				humanize.CommafWithDigits(run.TotalKWh, 2),
				run.TOUCost, run.FlatCost, run.Savings)
		}
		fmt.Printf("\n%d runs\n", len(runs))
		return nil
	}

	readings, err := db.ListReadings()
	if err != nil {
		return fmt.Errorf("listing readings: %w", err)
	}

	if len(readings) == 0 {
		fmt.Println("No readings found")
		return nil
	}

	fmt.Println("\nStored Readings:")
	fmt.Println("----------------------------------------")
	fmt.Printf("%-16s  %10s\n", "Timestamp", "kWh")
	fmt.Println("----------------------------------------")

	var total float64
	for _, reading := range readings {
		fmt.Printf("%-16s  %10.2f\n", reading.Timestamp.Format("2006-01-02 15:04"), reading.KWh)
		total += reading.KWh
	}

	fmt.Println("----------------------------------------")
	fmt.Printf("Total: %s kWh (%s records)\n",
		humanize.CommafWithDigits(total, 2), humanize.Comma(int64(len(readings))))

	return nil
}
