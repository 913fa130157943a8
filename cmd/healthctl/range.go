package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blaisecz/health-trends/internal/kpi"
)

var (
	rangeDays int
	rangeAt   string
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Show the current and previous comparison windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if rangeAt != "" {
			parsed, err := time.Parse("2006-01-02", rangeAt)
			if err != nil {
				return fmt.Errorf("invalid --at date %q: use YYYY-MM-DD", rangeAt)
			}
			now = parsed
		}

		current, previous, err := kpi.CurrentAndPreviousRange(now, rangeDays)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "PERIOD\tSTART\tEND\tQUERY_FROM\tQUERY_TO")
		fmt.Fprintf(out, "current\t%s\t%s\t%s\t%s\n", current.StartDay(), current.EndDay(), current.QueryFrom(), current.QueryTo())
		fmt.Fprintf(out, "previous\t%s\t%s\t%s\t%s\n", previous.StartDay(), previous.EndDay(), previous.QueryFrom(), previous.QueryTo())
		return nil
	},
}

func init() {
	rangeCmd.Flags().IntVar(&rangeDays, "days", kpi.DefaultLookbackDays, "Lookback in days (1-365)")
	rangeCmd.Flags().StringVar(&rangeAt, "at", "", "Reference day (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(rangeCmd)
}
