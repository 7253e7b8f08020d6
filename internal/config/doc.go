// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/drills/config.toml (or the XDG
// equivalent on Linux, ~/Library/Application Support/drills/config.toml on
// macOS, %APPDATA%\drills\config.toml on Windows). A missing config file is
// not an error; defaults apply.
package config
