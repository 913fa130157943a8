package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/normalize"
)

func readCollections(path string) (domain.Collections, error) {
	if path == "" {
		return domain.Collections{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Collections{}, fmt.Errorf("read collections: %w", err)
	}
	var c domain.Collections
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Collections{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func newNormalizer() (*normalize.Normalizer, error) {
	if schemaPath == "" {
		return normalize.New(nil), nil
	}
	table, err := normalize.LoadSchemaFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return normalize.New(table), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, *v)
}
