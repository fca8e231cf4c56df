package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, "folio.db", c.StoragePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://json:1",
		"storage_path": "json.db",
		"request_timeout": "3s"
	}`), 0o600))

	os.Args = []string{"folio", "-c", path, "-a", "http://flag:2"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	want := &Config{ServerURL: "http://flag:2", StoragePath: "json.db", RequestTimeout: 3 * time.Second}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_BadJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ nope`), 0o600))
	os.Args = []string{"folio", "-config", path}

	_, err := LoadConfig()
	require.Error(t, err)
}
