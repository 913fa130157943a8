package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blaisecz/health-trends/internal/chart"
	"github.com/blaisecz/health-trends/internal/domain"
)

var (
	chartsCurrent string
	chartsSource  string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Print chart-ready series for a collection file",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := readCollections(chartsCurrent)
		if err != nil {
			return err
		}
		n, err := newNormalizer()
		if err != nil {
			return err
		}

		if chartsSource == "" {
			return writeJSON(cmd.OutOrStdout(), chart.Format(n.NormalizeAll(current)))
		}

		source := domain.SourceType(chartsSource)
		if !source.IsValid() || source == domain.SourceAnalytics {
			return fmt.Errorf("unknown chart source %q", chartsSource)
		}
		return writeJSON(cmd.OutOrStdout(), chart.Series(source, n.Normalize(source, current.Get(source))))
	},
}

func init() {
	chartsCmd.Flags().StringVar(&chartsCurrent, "current", "", "Collections JSON for the current period")
	chartsCmd.Flags().StringVar(&chartsSource, "source", "", "Only print the series of one source (weight, sleep, steps, waist)")
	_ = chartsCmd.MarkFlagRequired("current")
	rootCmd.AddCommand(chartsCmd)
}
