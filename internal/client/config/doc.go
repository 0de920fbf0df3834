// Package config loads runtime configuration for the bookmarks CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. BOOKMARKS_CLIENT_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the bookmarks server
//	-f string   path of the local SQLite mirror
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:5000",
//	  "local_db_path": "bookmarks.db",
//	  "request_timeout": "5s"
//	}
package config
