package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blaisecz/health-trends/internal/normalize"
)

var extractCmd = &cobra.Command{
	Use:   "extract FIELD_JSON",
	Short: "Extract the numeric value of a raw field",
	Long:  "extract decodes FIELD_JSON (a number, a numeric string such as \"72.5\", or an envelope such as {\"value\":72.5}) and prints its numeric value, or null.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var field any
		if err := json.Unmarshal([]byte(args[0]), &field); err != nil {
			// Bare words are treated as strings.
			field = args[0]
		}

		v, ok := normalize.ExtractValue(field)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "null")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'f', -1, 64))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
