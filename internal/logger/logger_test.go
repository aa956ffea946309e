package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"provider", "gemini", "GEMINI_API_KEY", "abc", "session_token", "t"})
	require.Len(t, got, 6)
	assert.Equal(t, "gemini", got[1])
	assert.Equal(t, "[redacted]", got[3])
	assert.Equal(t, "[redacted]", got[5])
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	assert.Equal(t, []interface{}{"a", 1, "dangling"}, got)
}

func TestNewFile_WritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "educareer.log")
	log, err := NewFile("prod", path)
	require.NoError(t, err)

	log.Info("session created", "session_id", "s-1", "api_key", "hidden")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "session created"), out)
	assert.True(t, strings.Contains(out, "s-1"), out)
	assert.False(t, strings.Contains(out, "hidden"), out)
}

func TestNop(t *testing.T) {
	log := Nop().With("k", "v")
	log.Debug("x")
	log.Error("y", "err", "boom")
	log.Sync()
}
