package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/kdf"
	"github.com/dmitrijs2005/gophvault/internal/logging"
)

// Config holds runtime settings for vaultctl.
type Config struct {
	DBDriver string `env:"VAULT_DB_DRIVER"`
	DSN      string `env:"VAULT_DSN"`

	Codec         string        `env:"VAULT_CODEC"`
	Cipher        string        `env:"VAULT_CIPHER"`
	KDF           string        `env:"VAULT_KDF"`
	KeyLength     uint32        `env:"VAULT_KEY_LENGTH"`
	KeyCache      bool          `env:"VAULT_KEY_CACHE"`
	DeriveTimeout time.Duration `env:"VAULT_DERIVE_TIMEOUT"`

	LogFormat string `env:"VAULT_LOG_FORMAT"`
	LogLevel  string `env:"VAULT_LOG_LEVEL"`

	S3Region    string `env:"VAULT_S3_REGION"`
	S3Endpoint  string `env:"VAULT_S3_ENDPOINT"`
	S3AccessKey string `env:"VAULT_S3_ACCESS_KEY"`
	S3SecretKey string `env:"VAULT_S3_SECRET_KEY"`
	S3Bucket    string `env:"VAULT_S3_BUCKET"`
	S3Prefix    string `env:"VAULT_S3_PREFIX"`
	S3PathStyle bool   `env:"VAULT_S3_PATH_STYLE"`
}

// LoadDefaults populates c with defaults suitable for a local vault.
func (c *Config) LoadDefaults() {
	c.DBDriver = string(dbx.SQLite)
	c.DSN = "vault.db"
	c.Codec = codec.NameCBOR
	c.Cipher = string(cryptox.AESCTR)
	c.KDF = string(kdf.Argon2id)
	c.KeyLength = 32
	c.KeyCache = true
	c.DeriveTimeout = 30 * time.Second
	c.LogFormat = logging.FormatText
	c.LogLevel = "warn"
	c.S3Region = "us-east-1"
	c.S3Prefix = backup.DefaultPrefix
}

// Load builds a Config from defaults, the JSON file, the environment and
// args (usually os.Args[1:]), in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every named algorithm is supported and that the key
// length fits the cipher.
func (c *Config) Validate() error {
	switch dbx.Dialect(c.DBDriver) {
	case dbx.SQLite, dbx.Postgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if _, err := codec.ByName(c.Codec); err != nil {
		return err
	}
	kind, err := cryptox.ParseCipherKind(c.Cipher)
	if err != nil {
		return err
	}
	if _, err := kdf.ParseAlgorithm(c.KDF); err != nil {
		return err
	}
	if err := cryptox.CheckKeySize(kind, int(c.KeyLength)*8); err != nil {
		return fmt.Errorf("key length %d: %w", c.KeyLength, err)
	}
	if c.DeriveTimeout <= 0 {
		return fmt.Errorf("derive timeout must be positive, got %s", c.DeriveTimeout)
	}
	return nil
}

// Dialect returns the configured database dialect.
func (c *Config) Dialect() dbx.Dialect { return dbx.Dialect(c.DBDriver) }

// CipherKind returns the configured cipher. Call after Validate.
func (c *Config) CipherKind() cryptox.CipherKind {
	kind, _ := cryptox.ParseCipherKind(c.Cipher)
	return kind
}

// KDFAlgorithm returns the configured derivation function. Call after Validate.
func (c *Config) KDFAlgorithm() kdf.Algorithm {
	alg, _ := kdf.ParseAlgorithm(c.KDF)
	return alg
}

// BackupEnabled reports whether an S3 bucket is configured.
func (c *Config) BackupEnabled() bool { return c.S3Bucket != "" }

// Backup returns the S3 settings.
func (c *Config) Backup() backup.Config {
	return backup.Config{
		Region:       c.S3Region,
		Endpoint:     c.S3Endpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		Bucket:       c.S3Bucket,
		Prefix:       c.S3Prefix,
		UsePathStyle: c.S3PathStyle,
	}
}
