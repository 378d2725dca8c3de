package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkarpovs/studynotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-u string   uploads directory
//	-w string   public (static front-end) directory
//	-b string   blob backend ("local" or "s3")
//	-l string   log format ("json" or "console")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-w", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")

	fs.StringVar(&config.UploadsDir, "u", config.UploadsDir, "uploads directory")
	fs.StringVar(&config.PublicDir, "w", config.PublicDir, "public static directory")
	fs.StringVar(&config.BlobBackend, "b", config.BlobBackend, "blob backend (local|s3)")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|console)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
}
