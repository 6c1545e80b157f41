package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-mtsample/internal/domain"
)

// TestFallbackSourceRows verifies the embedded offline sample: exactly
// three rows, each valid and each labelled with gold "A".
func TestFallbackSourceRows(t *testing.T) {
	src := NewFallbackSource(nil)

	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, int64(i+1), row.ID)
		assert.NoError(t, row.Validate())
		require.NotNil(t, row.Gold, "fallback row %d must carry a gold label", row.ID)
		assert.Equal(t, domain.GoldA, *row.Gold)
	}
}

func TestFallbackSourceHonorsContext(t *testing.T) {
	src := NewFallbackSource(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
