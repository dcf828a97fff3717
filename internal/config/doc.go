// Package config loads runtime configuration for vaultctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c, -config or --config.
//  3. A .env file in the working directory, then process environment
//     variables (VAULT_*).
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "db_driver": "sqlite",
//	  "dsn": "vault.db",
//	  "cipher": "chacha20",
//	  "kdf": "argon2id",
//	  "derive_timeout": "30s",
//	  "s3_bucket": "vault"
//	}
package config
