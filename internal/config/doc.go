// Package config loads, normalizes, and validates clipset configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CLIPSET_NUM_CLASSES and CLIPSET_DATA_DIR. The Config type centralizes the
// frame shape, class count, and directory layout every command needs, so the
// settings are constructed once at startup and passed explicitly rather than
// read from process-global state.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
