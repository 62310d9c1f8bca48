// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/ftools/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/ftools/config.toml on macOS, %APPDATA%\ftools\config.toml
// on Windows). The package provides type-safe configuration access covering duplicate
// detection defaults (minimum size, digest algorithm, worker count) and UI settings.
//
// Every field is validated after loading via typed IsValid() checks, so invalid values
// produce field-level error messages instead of surfacing later as odd behavior.
package config
