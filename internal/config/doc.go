// Package config loads, normalizes, and validates the TOML configuration for
// submatch.
//
// Configuration resolution order is an explicit path, then
// ~/.config/submatch/config.toml, then a project-local submatch.toml. Missing
// files are not an error; defaults apply. All path values are tilde-expanded
// and made absolute during normalization, so downstream packages never see
// relative or unexpanded paths.
package config
