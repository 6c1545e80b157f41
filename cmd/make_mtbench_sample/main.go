// Command make_mtbench_sample produces a compact sample of paired
// response comparisons for demo seeding. It prefers the real
// lmsys/mt_bench_human_judgments dataset and falls back to a small
// embedded sample so the demo keeps working offline.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/ahrav/go-mtsample/internal/domain"
	"github.com/ahrav/go-mtsample/internal/sample"
	"github.com/ahrav/go-mtsample/internal/source"
)

// outputPath is fixed; the tool takes no flags or environment.
const outputPath = "mtbench_sample.json"

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelDebug,
	}))

	ctx := context.Background()
	rows := loadRows(ctx, logger)

	if err := sample.WriteFile(rows, outputPath); err != nil {
		logger.Error("failed to write sample", "path", outputPath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), outputPath)
}

// loadRows tries the remote judgment dataset and downgrades to the
// embedded fallback on any failure. The two failure modes are logged
// differently but produce the same observable behavior.
func loadRows(ctx context.Context, logger *slog.Logger) []domain.ComparisonRow {
	remote := source.NewHuggingFaceSource(logger)
	rows, err := remote.Fetch(ctx)
	if err == nil {
		return sample.Build(rows)
	}

	if errors.Is(err, domain.ErrSourceUnavailable) {
		logger.Debug("judgment dataset unreachable, using fallback sample",
			"source", remote.Name(), "error", err)
	} else {
		logger.Warn("judgment dataset fetch failed, using fallback sample",
			"source", remote.Name(), "error", err)
	}

	fallback := source.NewFallbackSource(logger)
	rows, err = fallback.Fetch(ctx)
	if err != nil {
		logger.Error("embedded fallback sample is unusable", "error", err)
		os.Exit(1)
	}
	return rows
}
