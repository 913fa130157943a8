// Command healthctl computes KPIs and chart series from collection files
// without a running provider.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var schemaPath string

var rootCmd = &cobra.Command{
	Use:          "healthctl",
	Short:        "healthctl computes health KPIs and chart data from JSON collections",
	Long:         "healthctl runs the normalization, KPI and chart pipeline over collection files shaped like {\"weight\":[],\"sleep\":[],\"waist\":[],\"steps\":[],\"analytics\":[]}.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to a YAML field-path schema overriding the defaults")
}

func main() {
	Execute()
}
