package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-w int      store timeout, seconds
//	-l int      rate limit: requests per window
//	-m int      rate limit: window, seconds
//	-x bool     trust X-Forwarded-For (use -x=true)
//	-v string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// Only these flags are considered (see flagx.FilterArgs), so binaries that
// add flags of their own can share os.Args. Durations are only overwritten
// when their flag is present, so sub-second values from JSON or env survive.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-k", "-w", "-l", "-m", "-x", "-v", "-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	storeTimeout := fs.Int("w", int(config.StoreTimeout.Seconds()), "store timeout (in seconds)")
	fs.Int64Var(&config.RateLimitRequests, "l", config.RateLimitRequests, "requests per rate limit window")
	rateWindow := fs.Int("m", int(config.RateLimitWindow.Seconds()), "rate limit window (in seconds)")
	fs.BoolVar(&config.TrustForwardHeader, "x", config.TrustForwardHeader, "trust X-Forwarded-For")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "w":
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		case "m":
			config.RateLimitWindow = time.Duration(*rateWindow) * time.Second
		}
	})
}
