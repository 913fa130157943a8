package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
)

var (
	kpisCurrent       string
	kpisPrevious      string
	kpisFormat        string
	kpisStepsCurrent  float64
	kpisStepsPrevious float64
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Compare KPI averages between two collection files",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := readCollections(kpisCurrent)
		if err != nil {
			return err
		}
		previous, err := readCollections(kpisPrevious)
		if err != nil {
			return err
		}
		n, err := newNormalizer()
		if err != nil {
			return err
		}

		var fallback *kpi.StepsFallback
		if cmd.Flags().Changed("steps-current") && cmd.Flags().Changed("steps-previous") {
			fallback = &kpi.StepsFallback{Current: kpisStepsCurrent, Previous: kpisStepsPrevious}
		}
		set := kpi.NewEngine(n, fallback).Build(current, previous)

		switch kpisFormat {
		case "json":
			return writeJSON(cmd.OutOrStdout(), set)
		case "table":
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KPI\tCURRENT\tPREVIOUS\tCHANGE%")
			for _, row := range kpiRows(set) {
				name := row.name
				if row.kpi.Estimated {
					name += "*"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", name,
					formatFloat(row.kpi.Current, 2), formatFloat(row.kpi.Previous, 2), formatFloat(row.kpi.Change, 2))
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q (want table or json)", kpisFormat)
		}
	},
}

type kpiRow struct {
	name string
	kpi  domain.KPI
}

func kpiRows(set domain.KPISet) []kpiRow {
	return []kpiRow{
		{"weight", set.Weight},
		{"muscle", set.Muscle},
		{"fat", set.Fat},
		{"totalSleep", set.TotalSleep},
		{"deepSleep", set.DeepSleep},
		{"steps", set.Steps},
		{"waist", set.Waist},
	}
}

func init() {
	kpisCmd.Flags().StringVar(&kpisCurrent, "current", "", "Collections JSON for the current period")
	kpisCmd.Flags().StringVar(&kpisPrevious, "previous", "", "Collections JSON for the previous period")
	kpisCmd.Flags().StringVar(&kpisFormat, "format", "table", "Output format: table or json")
	kpisCmd.Flags().Float64Var(&kpisStepsCurrent, "steps-current", 0, "Placeholder steps average for an empty current period")
	kpisCmd.Flags().Float64Var(&kpisStepsPrevious, "steps-previous", 0, "Placeholder steps average for an empty previous period")
	_ = kpisCmd.MarkFlagRequired("current")
	rootCmd.AddCommand(kpisCmd)
}
