package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookmarks/internal/flagx"
	"github.com/dmitrijs2005/bookmarks/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept either "90s"-style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	StoreTimeout                timex.Duration `json:"store_timeout"`
	RateLimitRequests           int64          `json:"rate_limit_requests"`
	RateLimitWindow             timex.Duration `json:"rate_limit_window"`
	TrustForwardHeader          *bool          `json:"trust_forward_header"`
	AttemptLogBuffer            int            `json:"attempt_log_buffer"`
	LogLevel                    string         `json:"log_level"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c / -config, if any, and copies every
// key present in it onto config. A missing or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.StoreTimeout.Duration > 0 {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.RateLimitWindow.Duration > 0 {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.RateLimitRequests > 0 {
		config.RateLimitRequests = c.RateLimitRequests
	}
	if c.AttemptLogBuffer > 0 {
		config.AttemptLogBuffer = c.AttemptLogBuffer
	}
	if c.TrustForwardHeader != nil {
		config.TrustForwardHeader = *c.TrustForwardHeader
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
