package locator_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/aeolus/internal/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create Google provider successfully", func(t *testing.T) {
		provider, err := locator.NewProvider(locator.ProviderConfig{
			Type:      locator.ProviderTypeGoogle,
			APIKey:    "test-api-key",
			RateLimit: 10,
			Logger:    logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &locator.GoogleProvider{}, provider)
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		provider, err := locator.NewProvider(locator.ProviderConfig{
			Type:   locator.ProviderTypeGoogle,
			Logger: logger,
		})

		require.Error(t, err)
		assert.Nil(t, provider)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("create Nominatim provider successfully", func(t *testing.T) {
		provider, err := locator.NewProvider(locator.ProviderConfig{
			Type:   locator.ProviderTypeNominatim,
			Logger: logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &locator.NominatimProvider{}, provider)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		provider, err := locator.NewProvider(locator.ProviderConfig{
			Type:   "visicom",
			Logger: logger,
		})

		require.Error(t, err)
		assert.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type")
	})
}
