package config

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
)

var (
	valueFlags = []string{
		"--db-driver", "--dsn", "-d", "--codec", "--cipher", "--kdf", "--key-length",
		"--derive-timeout", "--log-format", "--log-level",
		"--s3-region", "--s3-endpoint", "--s3-access-key", "--s3-secret-key", "--s3-bucket", "--s3-prefix",
	}
	boolFlags = []string{"--key-cache", "--s3-path-style"}
)

// parseFlags overlays cfg with command-line flags. Arguments that are not
// config flags (including -c/--config) are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, valueFlags, boolFlags...)

	fs := pflag.NewFlagSet("vaultctl", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver: sqlite or pgx")
	fs.StringVarP(&cfg.DSN, "dsn", "d", cfg.DSN, "database DSN or SQLite file path")
	fs.StringVar(&cfg.Codec, "codec", cfg.Codec, "record codec: cbor or proto")
	fs.StringVar(&cfg.Cipher, "cipher", cfg.Cipher, "cipher for new secrets: aes-ctr or chacha20")
	fs.StringVar(&cfg.KDF, "kdf", cfg.KDF, "KDF for new keys: argon2id, pbkdf2-sha256, pbkdf2-sha512, scrypt")
	fs.Uint32Var(&cfg.KeyLength, "key-length", cfg.KeyLength, "derived key length in bytes")
	fs.BoolVar(&cfg.KeyCache, "key-cache", cfg.KeyCache, "cache derived keys in memory")
	fs.DurationVar(&cfg.DeriveTimeout, "derive-timeout", cfg.DeriveTimeout, "upper bound for one key derivation")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3 base endpoint (MinIO etc.)")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for backups")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "object key prefix for backups")
	fs.BoolVar(&cfg.S3PathStyle, "s3-path-style", cfg.S3PathStyle, "use path-style S3 addressing")

	return fs.Parse(args)
}
