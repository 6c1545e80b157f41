// Package domain defines the comparison-row data model shared by the
// sample builder and its row sources.
package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// MaxOptionChars is the maximum length, in characters, of either
// candidate response. Longer responses are dropped so the demo UI can
// render both options side by side.
const MaxOptionChars = 1500

// Gold identifies which of the two options a human judge preferred.
type Gold string

// Recognized gold label values.
const (
	// GoldA marks the first option as the preferred response.
	GoldA Gold = "A"

	// GoldB marks the second option as the preferred response.
	GoldB Gold = "B"
)

// Package-level validator instance for row validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// ComparisonRow is one unit of demo data: a prompt with two candidate
// responses and an optional gold preference label.
type ComparisonRow struct {
	// ID uniquely identifies this row within the output sample.
	ID int64 `json:"id" yaml:"id"`

	// Prompt is the question or task given to both candidate responses.
	Prompt string `json:"prompt" yaml:"prompt" validate:"required"`

	// OptionA is the first candidate response.
	OptionA string `json:"optionA" yaml:"optionA" validate:"required,max=1500"`

	// OptionB is the second candidate response.
	OptionB string `json:"optionB" yaml:"optionB" validate:"required,max=1500"`

	// Gold indicates the preferred option. It is nil when the judges
	// did not agree on a winner, serialized as an explicit null.
	Gold *Gold `json:"gold" yaml:"gold"`
}

// Validate checks the row invariants: non-empty prompt and options,
// with both options at most MaxOptionChars characters. Rows failing
// validation are dropped during construction, never repaired.
func (r ComparisonRow) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}
	for _, text := range []string{r.Prompt, r.OptionA, r.OptionB} {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: blank text field", ErrInvalidRow)
		}
	}
	if r.Gold != nil && *r.Gold != GoldA && *r.Gold != GoldB {
		return fmt.Errorf("%w: unknown gold label %q", ErrInvalidRow, *r.Gold)
	}
	return nil
}

// CleanText trims surrounding whitespace and normalizes the text to
// NFC so that length checks see composed characters. It returns an
// empty string when nothing remains after trimming.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
