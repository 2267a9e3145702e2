// Package config loads runtime configuration for the useradmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional dotenv file (default ".env", override with -env). Values only
//     populate variables that are not already set in the environment.
//  3. Optional JSON file selected with -c or -config.
//  4. USERADMIN_* environment variables.
//  5. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the user API (e.g. http://localhost:8000)
//	-t int      request timeout (seconds)
//	-o string   directory the spreadsheet export is written to
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "30s",
//	  "export_dir": "download",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
