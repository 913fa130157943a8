// Script to dump deterministic sample collections for a patient, one file
// per period, in the format read by healthctl.
// Usage: go run scripts/seed/main.go -patient demo@example.com -days 30 -out testdata
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/seed"
)

func main() {
	patient := flag.String("patient", "demo@example.com", "Patient identifier")
	days := flag.Int("days", kpi.DefaultLookbackDays, "Lookback in days")
	out := flag.String("out", ".", "Output directory")
	flag.Parse()

	current, previous, err := kpi.CurrentAndPreviousRange(time.Now(), *days)
	if err != nil {
		log.Fatalf("Invalid period: %v", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	p := seed.NewProvider()
	ctx := context.Background()
	for name, period := range map[string]domain.Period{"current": current, "previous": previous} {
		collections, err := seed.Collections(ctx, p, *patient, period)
		if err != nil {
			log.Fatalf("Failed to generate %s collections: %v", name, err)
		}

		path := filepath.Join(*out, name+".json")
		data, err := json.MarshalIndent(collections, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode %s collections: %v", name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s (%s to %s)", path, period.StartDay(), period.EndDay())
	}
}
