// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides TOML configuration for adda.
//
// Configuration lives at ~/.adda/config.toml with environment variable
// overrides (ADDA_API_KEY, ADDA_MODEL, etc). A Watcher reloads the file
// on change so model settings apply without a restart.
//
// # Usage
//
//	cfg, err := config.Load()
//
// Loading order: file, then environment overrides, then defaults for
// anything still unset. The file is written with 0600 permissions since
// it can contain the API key.
package config
