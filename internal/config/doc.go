// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for parley.
//
// Configuration is read from ~/.parley/config.toml with built-in defaults,
// environment variable overrides, and validation. A process-global accessor
// is provided for the TUI and CLI entry points, and a file watcher supports
// live reload when the config file changes on disk.
package config
