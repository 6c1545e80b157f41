package sample

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ahrav/go-mtsample/internal/domain"
)

// WriteFile serializes rows as a UTF-8 JSON array to path, replacing
// any existing file. Output is indented two spaces with non-ASCII
// characters kept literal, so identical input produces a byte-identical
// file.
func WriteFile(rows []domain.ComparisonRow, path string) error {
	if rows == nil {
		rows = []domain.ComparisonRow{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		f.Close()
		return fmt.Errorf("encode sample: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close sample file: %w", err)
	}
	return nil
}
