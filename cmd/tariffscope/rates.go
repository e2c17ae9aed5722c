package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tariffscope/internal/tariff"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the rate schedule and configured prices",
	Long:  `Displays the rate calendar (seasons and peak hours) and the per-kWh prices in effect, including any overrides from config.yaml.`,
	RunE:  runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	schedule := tariff.DefaultSchedule()
	rates := cfg.GetRateTable()

	fmt.Println("\nRate Schedule:")
	fmt.Println("------------------------------------------------------------")
	for _, rule := range schedule.Rules {
		fmt.Printf("%-16s  months %-24s  %s\n",
			rule.Period, monthList(rule.Months), hourList(rule.Hours))
	}

	fmt.Println("\nPrices ($ per kWh):")
	fmt.Println("------------------------------------------------------------")
	for _, period := range schedule.Periods() {
		fmt.Printf("%-16s  $%.5f\n", period, rates.PerKWh[period])
	}
	fmt.Printf("%-16s  $%.5f\n", "flat", rates.FlatRate)

	return nil
}

func monthList(months []time.Month) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()[:3]
	}
	return strings.Join(names, ",")
}

func hourList(hours []tariff.HourRange) string {
	if len(hours) == 0 {
		return "all hours"
	}
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00-%02d:00", h.From, h.To)
	}
	return strings.Join(parts, ", ")
}
