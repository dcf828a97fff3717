package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
	"github.com/dmitrijs2005/gophvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "explicitly false/zero".
type JsonConfig struct {
	DBDriver      string          `json:"db_driver"`
	DSN           string          `json:"dsn"`
	Codec         string          `json:"codec"`
	Cipher        string          `json:"cipher"`
	KDF           string          `json:"kdf"`
	KeyLength     uint32          `json:"key_length"`
	KeyCache      *bool           `json:"key_cache"`
	DeriveTimeout *timex.Duration `json:"derive_timeout"`
	LogFormat     string          `json:"log_format"`
	LogLevel      string          `json:"log_level"`
	S3Region      string          `json:"s3_region"`
	S3Endpoint    string          `json:"s3_endpoint"`
	S3AccessKey   string          `json:"s3_access_key"`
	S3SecretKey   string          `json:"s3_secret_key"`
	S3Bucket      string          `json:"s3_bucket"`
	S3Prefix      string          `json:"s3_prefix"`
	S3PathStyle   *bool           `json:"s3_path_style"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any. Only
// keys present in the file are applied.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	setString(&cfg.DBDriver, jc.DBDriver)
	setString(&cfg.DSN, jc.DSN)
	setString(&cfg.Codec, jc.Codec)
	setString(&cfg.Cipher, jc.Cipher)
	setString(&cfg.KDF, jc.KDF)
	if jc.KeyLength != 0 {
		cfg.KeyLength = jc.KeyLength
	}
	if jc.KeyCache != nil {
		cfg.KeyCache = *jc.KeyCache
	}
	if jc.DeriveTimeout != nil {
		cfg.DeriveTimeout = jc.DeriveTimeout.Duration
	}
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	if jc.S3PathStyle != nil {
		cfg.S3PathStyle = *jc.S3PathStyle
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
