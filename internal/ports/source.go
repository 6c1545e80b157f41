// Package ports declares the interfaces between the sample pipeline
// and its data providers.
package ports

import (
	"context"

	"github.com/ahrav/go-mtsample/internal/domain"
)

// RowSource supplies comparison rows for the sample builder. Exactly
// two implementations exist: the remote judgment dataset and the
// embedded fallback sample, selected with a simple availability check
// at the call site.
type RowSource interface {
	// Name identifies the source in diagnostics.
	Name() string

	// Fetch returns every row the source can provide. It either
	// succeeds completely or returns an error; partial results are
	// never used. Implementations wrap domain.ErrSourceUnavailable
	// when the source cannot be reached at all.
	Fetch(ctx context.Context) ([]domain.ComparisonRow, error)
}
