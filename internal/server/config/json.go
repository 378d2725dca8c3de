package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkarpovs/studynotes/internal/flagx"
	"github.com/mkarpovs/studynotes/internal/timex"
)

// JsonConfig is an intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which parses both string
// values such as "24h" and integer nanoseconds. Zero values mean "not set"
// and leave the existing configuration untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	UploadsDir            string         `json:"uploads_dir"`
	PublicDir             string         `json:"public_dir"`
	BlobBackend           string         `json:"blob_backend"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	LogFormat             string         `json:"log_format"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. An unreadable or invalid file panics: a config
// file that was explicitly requested but cannot be honored is fatal.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(c.EndpointAddrHTTP, &config.EndpointAddrHTTP)
	overlay(c.DatabaseDSN, &config.DatabaseDSN)
	overlay(c.SecretKey, &config.SecretKey)
	overlay(c.UploadsDir, &config.UploadsDir)
	overlay(c.PublicDir, &config.PublicDir)
	overlay(c.BlobBackend, &config.BlobBackend)
	overlay(c.S3RootUser, &config.S3RootUser)
	overlay(c.S3RootPassword, &config.S3RootPassword)
	overlay(c.S3Bucket, &config.S3Bucket)
	overlay(c.S3Region, &config.S3Region)
	overlay(c.S3BaseEndpoint, &config.S3BaseEndpoint)
	overlay(c.LogFormat, &config.LogFormat)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
