// Package config provides varwire's runtime configuration.
//
// Settings are layered with later sources overriding earlier ones:
//
//	defaults  <-  config file (TOML or YAML)  <-  VARWIRE_* environment
//
// The file format is chosen by extension. Keys use camelCase inside
// sections, matching the environment mapping:
//
//	host = "lua"
//
//	[wire]
//	maxLength = 1000
//	ellipsis = "..."
//	trim = true
//
//	[format]
//	tooBigLen = 300
//
//	[logging]
//	level = "info"
//	development = false
//
// # Sub-packages
//
//   - loader: File and environment loaders producing generic maps
//   - watcher: fsnotify-based change notification for config and scripts
package config
