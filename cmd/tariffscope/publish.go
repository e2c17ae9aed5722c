package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tariffscope/internal/publisher"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the latest analysis summary over MQTT",
	Long: `Reads the most recent saved analysis run from the database and publishes
its summary to the configured MQTT broker, for example to feed a Home
Assistant sensor. Run 'tariffscope analyze --save' first.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	// Open database
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	run, err := db.LatestRun()
	if err != nil {
		return fmt.Errorf("loading latest run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no saved analysis runs found (run 'tariffscope analyze --save' first)")
	}

	// Create publisher
	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	fmt.Printf("Publishing run %s (%s)... ", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	if err := pub.PublishRun(*run); err != nil {
		fmt.Println("FAILED")
		return fmt.Errorf("publishing run: %w", err)
	}
	fmt.Println("✓")

	return nil
}
