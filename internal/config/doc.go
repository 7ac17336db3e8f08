// Package config loads roost's startup configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. The TOML file given by path, or ~/.config/roost/config.toml
//  3. A .env file in the working directory, if present
//  4. ROOST_* environment variables
//
// Later sources win. A missing config file or .env file is not an error.
// Variables loaded from .env never replace variables already set in the
// process environment.
//
// # TOML Format
//
//	base_url     = "https://14.design.htmlacademy.pro/six-cities"
//	timeout      = "5s"
//	token_path   = "~/.config/roost/token.toml"
//	log_path     = "~/.local/state/roost/roost.log"
//	default_city = "Paris"
//	poll_seconds = 30
//
// Every field is optional. Paths get tilde expansion. default_city must name
// a city from the catalog in internal/domain, matched case-insensitively.
//
// # Environment
//
//	ROOST_BASE_URL, ROOST_TIMEOUT (Go duration), ROOST_TOKEN_PATH,
//	ROOST_LOG_PATH, ROOST_DEFAULT_CITY, ROOST_POLL_SECONDS
//
// # Errors
//
// Load fails on unreadable files, TOML syntax errors ("parse config"),
// malformed environment values ("parse env") and unknown default cities.
package config
