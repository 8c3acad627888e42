package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/carbonshop/pkg/config"
)

// Each test uses its own struct type: Load caches per type, so sharing one
// would leak state between tests.

func TestLoad_Success(t *testing.T) {
	type cfg struct {
		Host string `env:"LOADER_TEST_HOST"`
		Port int    `env:"LOADER_TEST_PORT" envDefault:"5432"`
	}
	t.Setenv("LOADER_TEST_HOST", "db.internal")

	var c cfg
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "db.internal", c.Host)
	assert.Equal(t, 5432, c.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	type cfg struct {
		Secret string `env:"LOADER_TEST_ABSENT,required"`
	}

	var c cfg
	err := config.Load(&c)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachedPerType(t *testing.T) {
	type cfg struct {
		Value string `env:"LOADER_TEST_CACHED"`
	}
	t.Setenv("LOADER_TEST_CACHED", "first")

	var a cfg
	require.NoError(t, config.Load(&a))

	// The cached copy wins even after the environment changes.
	t.Setenv("LOADER_TEST_CACHED", "second")
	var b cfg
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[struct{}](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type cfg struct {
		Secret string `env:"LOADER_TEST_MUST_ABSENT,required"`
	}

	assert.Panics(t, func() {
		var c cfg
		config.MustLoad(&c)
	})
}
