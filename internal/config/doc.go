// Package config provides configuration management for cuesplit.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Conversion to the tagger and playlist configuration
//
// # Loading from File
//
//	path, _ := config.DefaultPath() // $XDG_CONFIG_HOME/cuesplit/config.toml
//	settings, err := config.Load(path)
//	if err != nil {
//	    // malformed file or invalid values; a missing file yields defaults
//	}
//
// Command-line flags override the loaded values.
package config
