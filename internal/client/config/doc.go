// Package config loads runtime configuration for the filmlog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the filmlog API
//	-s string     secret used to sign request payloads (optional)
//	-t duration   per-request timeout
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "secret": "",
//	  "request_timeout": "10s"
//	}
package config
