// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for nodediff's user
// configuration. The configuration is a YAML document located by
// NODEDIFF_CFG_FILE or in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/nodediff.yaml or $HOME/.config/nodediff.yaml
//   - macOS: $HOME/Library/Application Support/nodediff.yaml
//   - Windows: %APPDATA%/nodediff.yaml
//
// Recognized keys include ignore, cache.clean, colors.added, colors.removed
// and <command>.<flag> defaults read through urfave/cli-altsrc.
package config
