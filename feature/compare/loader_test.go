package compare

import (
	"testing"

	"dataset-reconciler/core/profile"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	logger := zap.NewNop()
	resolver := source.NewResolver(source.Config{}, nil, nil, 0, logger)
	defer resolver.Close()
	profiles, err := profile.NewRegistry()
	require.NoError(t, err)

	feature := NewFeature(resolver, profiles, Config{DefaultAlignment: reconcile.AlignByName}, logger)

	assert.Equal(t, "compare", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err = feature.Load(app)
	assert.NoError(t, err)
}
