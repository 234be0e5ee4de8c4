// Package config loads, normalizes, and validates vidfetch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// PORT and VIDFETCH_CONFIG. The Config type centralizes every knob the
// daemon and CLI need: the downloads root, downloader timeouts, sweep
// cadence, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
