package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from the environment. A .env file in the
// working directory is loaded first (missing file is fine); real environment
// variables take precedence over .env values, which godotenv guarantees by
// never overriding existing keys.
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT HMAC secret
//	TOKEN_VALIDITY  token lifetime, Go duration syntax ("24h")
//	BCRYPT_COST     bcrypt work factor
//	UPLOADS_DIR     blob directory (local backend)
//	PUBLIC_DIR      static front-end directory
//	BLOB_BACKEND    "local" or "s3"
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	LOG_FORMAT      "json" or "console"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("ADDRESS", &config.EndpointAddrHTTP)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setString("UPLOADS_DIR", &config.UploadsDir)
	setString("PUBLIC_DIR", &config.PublicDir)
	setString("BLOB_BACKEND", &config.BlobBackend)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	setString("LOG_FORMAT", &config.LogFormat)

	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
}
