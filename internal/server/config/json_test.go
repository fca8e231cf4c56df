package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":        "www.example:8080",
		"grpc_addr":        "www.example:9000",
		"database_dsn":     "postgres://db",
		"secret_key":       "my_secret_key",
		"token_ttl":        "2h",
		"bcrypt_cost":      12,
		"log_level":        "debug",
		"s3_root_user":     "user",
		"s3_root_password": "password",
		"s3_bucket":        "bucket",
		"s3_region":        "region",
		"s3_base_endpoint": "base_endpoint",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		require.NoError(t, parseJson(cfg))

		want := &Config{
			HTTPAddr:       "www.example:8080",
			GRPCAddr:       "www.example:9000",
			DatabaseDSN:    "postgres://db",
			SecretKey:      "my_secret_key",
			TokenTTL:       2 * time.Hour,
			BcryptCost:     12,
			LogLevel:       "debug",
			S3RootUser:     "user",
			S3RootPassword: "password",
			S3Bucket:       "bucket",
			S3Region:       "region",
			S3BaseEndpoint: "base_endpoint",
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg

		require.NoError(t, parseJson(cfg))
		assert.Empty(t, cmp.Diff(&want, cfg))
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"token_ttl": 3600000000000})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, time.Hour, cfg.TokenTTL)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}
		require.Error(t, parseJson(&Config{}))
	})
}
