package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
)

var knownFlags = []string{
	"-a", "-g", "-storage", "-d", "-s", "-t", "-cors", "-l",
	"-u", "-p", "-b", "-r", "-e",
}

// parseFlags overlays command-line flags onto config.
//
//	-a string       HTTP bind address (":5000")
//	-g string       gRPC health bind address (":50051")
//	-storage string postgres | memory
//	-d string       PostgreSQL DSN
//	-s string       JWT HMAC secret key
//	-t duration     token validity ("168h")
//	-cors string    comma-separated allowed origins
//	-l string       log level
//	-u, -p, -b, -r, -e  S3 user, password, bucket, region, endpoint
//
// args is filtered with flagx.FilterArgs first, so -c/-config and flags
// belonging to other components are skipped.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("fintrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.HealthAddrGRPC, "g", config.HealthAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend: postgres or memory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token secret key")
	fs.DurationVar(&config.TokenValidity, "t", config.TokenValidity, "token validity duration")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "allowed CORS origins, comma separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.CORSOrigins = splitList(*cors)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
