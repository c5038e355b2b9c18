// Package config loads, normalizes, and validates the TOML configuration
// used by the flacsmith CLI.
package config
