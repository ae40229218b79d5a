// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend exposes snapshot sources that keep a version history: a
// local directory of snapshot files or the object versions of one S3 key.
package backend
