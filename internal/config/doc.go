// Package config loads, normalizes, and validates nacombine configuration.
//
// Settings come from repository defaults, an optional TOML file, and command
// line overrides applied in that order. Corpus and output paths are expanded
// (including tilde shortcuts) and made absolute so the pipeline never works
// with relative path conventions baked into the algorithm.
//
// Always obtain settings through this package so downstream stages receive
// sanitized paths and clear validation errors.
package config
