package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("leise")
	assert.Zero(t, buf.Len())

	log.Warn().Str("kurs", "1").Msg("laut")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "laut", entry["message"])
	assert.Equal(t, "1", entry["kurs"])
}

func TestNewWithWriterUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "geschwätzig", false)

	log.Debug().Msg("weg")
	assert.Zero(t, buf.Len())
	log.Info().Msg("da")
	assert.NotZero(t, buf.Len())
}
