// Package testutils provides test data generators for the sample
// pipeline. These helpers are intended for the project's test suites
// and are not part of the public API.
package testutils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/ahrav/go-mtsample/internal/domain"
)

// promptTemplates seed the synthetic rows. Content is irrelevant to
// the pipeline; only the invariants matter.
var promptTemplates = []string{
	"Explain the concept of %s to a ten year old.",
	"Summarize the main arguments for and against %s.",
	"Write a short paragraph about the history of %s.",
	"What are the practical uses of %s?",
}

var topics = []string{
	"photosynthesis", "compound interest", "plate tectonics",
	"machine translation", "public key cryptography", "the water cycle",
}

// GenerateComparisonRows creates size synthetic rows that all satisfy
// the sample invariants. The seed controls randomization; a fixed seed
// yields an identical sequence, which the determinism tests rely on.
func GenerateComparisonRows(size int, seed int64) []domain.ComparisonRow {
	rng := rand.New(rand.NewSource(seed))

	rows := make([]domain.ComparisonRow, 0, size)
	for i := range size {
		template := promptTemplates[rng.Intn(len(promptTemplates))]
		topic := topics[rng.Intn(len(topics))]

		row := domain.ComparisonRow{
			ID:      int64(i + 1),
			Prompt:  fmt.Sprintf(template, topic),
			OptionA: syntheticAnswer(rng, topic, "thorough"),
			OptionB: syntheticAnswer(rng, topic, "sloppy"),
		}

		// Roughly a third of real judgments are ties.
		switch rng.Intn(3) {
		case 0:
			g := domain.GoldA
			row.Gold = &g
		case 1:
			g := domain.GoldB
			row.Gold = &g
		}

		rows = append(rows, row)
	}
	return rows
}

func syntheticAnswer(rng *rand.Rand, topic, style string) string {
	sentences := rng.Intn(4) + 1
	var b strings.Builder
	for i := range sentences {
		fmt.Fprintf(&b, "A %s observation %d about %s. ", style, i+1, topic)
	}
	return strings.TrimSpace(b.String())
}
