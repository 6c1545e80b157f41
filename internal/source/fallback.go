package source

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-mtsample/internal/domain"
	"github.com/ahrav/go-mtsample/internal/ports"
)

//go:embed fallback_rows.yaml
var fallbackRowsYAML []byte

// FallbackSource serves the small hand-authored sample embedded in the
// binary, keeping the demo working when the judgment dataset cannot be
// fetched. Every row carries a gold label.
type FallbackSource struct {
	logger *slog.Logger
}

var _ ports.RowSource = (*FallbackSource)(nil)

// NewFallbackSource returns the embedded offline sample source.
func NewFallbackSource(logger *slog.Logger) *FallbackSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackSource{logger: logger}
}

// Name implements ports.RowSource.
func (s *FallbackSource) Name() string { return "embedded fallback sample" }

// Fetch decodes the embedded sample document. It fails only if the
// document shipped with the binary is malformed.
func (s *FallbackSource) Fetch(ctx context.Context) ([]domain.ComparisonRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc struct {
		Rows []domain.ComparisonRow `yaml:"rows"`
	}
	if err := yaml.Unmarshal(fallbackRowsYAML, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSample, err)
	}

	for i, row := range doc.Rows {
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrMalformedSample, i, err)
		}
	}

	s.logger.Debug("using embedded fallback sample", "rows", len(doc.Rows))
	return doc.Rows, nil
}
