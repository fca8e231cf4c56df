package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", writeTempJSON(t, map[string]any{
			"server_url":      "http://www.example:9000",
			"request_timeout": "7s",
		})}

		cfg := &Config{StoragePath: "keep.db"}
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, "keep.db", cfg.StoragePath)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerURL: "http://defaults:1234"}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "absent.json")}
		require.Error(t, parseJson(&Config{}))
	})
}
