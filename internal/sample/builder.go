// Package sample turns fetched comparison rows into the fixed-size
// demo sample and writes it to disk.
package sample

import (
	"math/rand"

	"github.com/ahrav/go-mtsample/internal/domain"
)

const (
	// Size caps the number of rows in the written sample.
	Size = 120

	// shuffleSeed fixes the shuffle order so repeated runs over the
	// same input select the same subset in the same order.
	shuffleSeed = 7
)

// Build filters out rows that violate the sample invariants, shuffles
// the survivors with a fixed seed, and keeps the first Size rows.
// The result length is min(Size, number of valid rows). Reproducibility
// holds only for an identical input sequence; the upstream dataset
// does not guarantee a stable row order between fetches.
func Build(rows []domain.ComparisonRow) []domain.ComparisonRow {
	kept := make([]domain.ComparisonRow, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			continue
		}
		kept = append(kept, row)
	}

	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(kept), func(i, j int) {
		kept[i], kept[j] = kept[j], kept[i]
	})

	if len(kept) > Size {
		kept = kept[:Size]
	}
	return kept
}
