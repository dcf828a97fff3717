package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/kdf"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "vault.db", c.DSN)
	assert.Equal(t, uint32(32), c.KeyLength)
	assert.True(t, c.KeyCache)
	assert.Equal(t, 30*time.Second, c.DeriveTimeout)
	assert.False(t, c.BackupEnabled())
	require.NoError(t, c.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"dsn":            "from-json.db",
		"cipher":         "chacha20",
		"kdf":            "scrypt",
		"key_cache":      false,
		"derive_timeout": "5s",
		"s3_bucket":      "json-bucket",
	})
	t.Setenv("VAULT_KDF", "pbkdf2-sha512")
	t.Setenv("VAULT_S3_BUCKET", "env-bucket")

	cfg, err := Load([]string{"-c", path, "--s3-bucket", "flag-bucket", "--s3-path-style", "positional"})
	require.NoError(t, err)

	assert.Equal(t, "from-json.db", cfg.DSN, "json overrides default")
	assert.Equal(t, cryptox.ChaCha20, cfg.CipherKind())
	assert.False(t, cfg.KeyCache)
	assert.Equal(t, 5*time.Second, cfg.DeriveTimeout)
	assert.Equal(t, kdf.PBKDF2SHA512, cfg.KDFAlgorithm(), "env overrides json")
	assert.Equal(t, "flag-bucket", cfg.S3Bucket, "flags override env")
	assert.True(t, cfg.S3PathStyle)
	assert.True(t, cfg.BackupEnabled())
	assert.Equal(t, dbx.SQLite, cfg.Dialect())
}

func TestLoad_ShortDSNFlag(t *testing.T) {
	cfg, err := Load([]string{"-d", "other.db", "--key-length", "16"})
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.DSN)
	assert.Equal(t, uint32(16), cfg.KeyLength)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing json file", []string{"-c", filepath.Join(t.TempDir(), "absent.json")}},
		{"bad flag value", []string{"--key-length", "many"}},
		{"unknown driver", []string{"--db-driver", "mysql"}},
		{"unknown cipher", []string{"--cipher", "rot13"}},
		{"unknown kdf", []string{"--kdf", "md5"}},
		{"unknown codec", []string{"--codec", "xml"}},
		{"key too short for chacha", []string{"--cipher", "chacha20", "--key-length", "16"}},
		{"non-positive timeout", []string{"--derive-timeout", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			require.Error(t, err)
		})
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	cfg := &Config{}
	require.Error(t, parseJSON(cfg, []string{"--config=" + path}))
}

func TestParseJSON_NoFileNoChanges(t *testing.T) {
	cfg := &Config{DSN: "keep.db", KeyCache: true}
	require.NoError(t, parseJSON(cfg, []string{"--dsn", "x"}))
	assert.Equal(t, "keep.db", cfg.DSN)
	assert.True(t, cfg.KeyCache)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("VAULT_S3_PREFIX=dotenv/\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("VAULT_S3_PREFIX") })

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, dotenv))
	assert.Equal(t, "dotenv/", cfg.S3Prefix)
}

func TestParseEnv_MissingDotEnvIsFine(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, "vault.db", cfg.DSN)
}

func TestBackup(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.S3Bucket = "vault"
	cfg.S3Endpoint = "http://127.0.0.1:9000"
	cfg.S3PathStyle = true

	b := cfg.Backup()
	assert.Equal(t, "vault", b.Bucket)
	assert.Equal(t, "http://127.0.0.1:9000", b.Endpoint)
	assert.Equal(t, "us-east-1", b.Region)
	assert.True(t, b.UsePathStyle)
}
