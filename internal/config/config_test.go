package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"mongodb": {"uri": "mongodb://localhost:27017", "db": "exim"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultPageLimit, cfg.Jobs.DefaultLimit)
	assert.Equal(t, DefaultQueryTimeoutSeconds, cfg.Jobs.QueryTimeoutSeconds)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Jobs.CacheTTLSeconds)
	assert.Equal(t, "jobs", cfg.Partitions[DefaultPartition])
	assert.Equal(t, "gandhidham_jobs", cfg.Partitions[GandhidhamPartition])
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.RabbitEnabled())
	assert.False(t, cfg.S3Enabled())
	assert.False(t, cfg.MongoDB.CreateIndexes)
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"mongodb": {"uri": "mongodb://db", "db": "exim", "create_indexes": true},
		"redis": {"address": "localhost:6379", "prefix": "portal"},
		"jobs": {"default_limit": 50},
		"partitions": {"default": "imports"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 50, cfg.Jobs.DefaultLimit)
	assert.Equal(t, "portal", cfg.Redis.Prefix)
	assert.Equal(t, "imports", cfg.Partitions[DefaultPartition])
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.MongoDB.CreateIndexes)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{`))
		assert.Error(t, err)
	})

	t.Run("missing mongodb uri", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{"mongodb": {"db": "exim"}}`))
		assert.ErrorContains(t, err, "mongodb.uri")
	})

	t.Run("empty partition collection", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `{"mongodb": {"uri": "x", "db": "y"}, "partitions": {"kandla": ""}}`))
		assert.ErrorContains(t, err, "kandla")
	})
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	SetupLoggingWithWriter(LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("year", "24-25").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"year":"24-25"`)
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
}
