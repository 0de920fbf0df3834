package config

import "time"

// Config holds runtime settings for the bookmarks CLI.
type Config struct {
	ServerEndpointAddr string        `env:"BOOKMARKS_CLIENT_SERVER_ADDR"`
	LocalDBPath        string        `env:"BOOKMARKS_CLIENT_DB_PATH"`
	RequestTimeout     time.Duration `env:"BOOKMARKS_CLIENT_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:5000"
	c.LocalDBPath = "bookmarks.db"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
