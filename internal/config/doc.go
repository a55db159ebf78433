// Package config loads, normalizes, and validates the scribe configuration.
//
// Values come from three layers, in increasing precedence: built-in defaults,
// an optional TOML file, and environment variables (optionally loaded from a
// discovered .env file). The whisper credentials are the only required
// values; everything else has a usable default.
package config
