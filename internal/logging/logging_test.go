package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("debug", "json", &buf)

	logger.Debug().Str("k", "v").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "password-meter", entry["service"])
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("chatty", "json", &buf)

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	logger.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("info", "console", &buf)

	logger.Info().Msg("started")
	assert.Contains(t, buf.String(), "started")
}
