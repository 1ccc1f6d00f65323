package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rrens/workout-planner/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	logger := log.Logger
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetup_Level(t *testing.T) {
	restoreGlobals(t)

	closer, err := Setup(config.LoggingConfig{Level: "WARN", Format: "json"})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	closer, err = Setup(config.LoggingConfig{Level: "nonsense"})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_File(t *testing.T) {
	restoreGlobals(t)

	path := filepath.Join(t.TempDir(), "server.log")
	closer, err := Setup(config.LoggingConfig{
		Level:        "debug",
		Format:       "console",
		File:         path,
		MaxAge:       24 * time.Hour,
		RotationTime: time.Hour,
	})
	require.NoError(t, err)

	log.Info().Str("component", "test").Msg("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), `"component":"test"`)
}
