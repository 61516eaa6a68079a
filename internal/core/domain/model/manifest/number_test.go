package manifest_test

import (
	"testing"

	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "HR-SDA-00001", manifest.FormatNumber(1))
	assert.Equal(t, "HR-SDA-00042", manifest.FormatNumber(42))
	// Sequences past five digits widen instead of wrapping.
	assert.Equal(t, "HR-SDA-123456", manifest.FormatNumber(123456))
}

func TestNumberSuffix(t *testing.T) {
	t.Run("parses the numeric suffix", func(t *testing.T) {
		suffix, err := manifest.NumberSuffix("HR-SDA-00042")
		require.NoError(t, err)
		assert.Equal(t, 42, suffix)
	})

	t.Run("numeric not lexicographic ordering", func(t *testing.T) {
		big, err := manifest.NumberSuffix("HR-SDA-100000")
		require.NoError(t, err)
		small, err := manifest.NumberSuffix("HR-SDA-99999")
		require.NoError(t, err)

		// As strings "HR-SDA-100000" < "HR-SDA-99999"; as numbers it is larger.
		assert.Greater(t, big, small)
	})

	t.Run("rejects a foreign prefix", func(t *testing.T) {
		_, err := manifest.NumberSuffix("XX-00042")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a non-numeric suffix", func(t *testing.T) {
		_, err := manifest.NumberSuffix("HR-SDA-abc")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestFormatNumberRoundTrip(t *testing.T) {
	suffix, err := manifest.NumberSuffix(manifest.FormatNumber(7))
	require.NoError(t, err)
	assert.Equal(t, 7, suffix)
}
