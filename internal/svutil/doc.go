// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package svutil describes stored snapshot versions and finds the ones a
// user asked for. Given a newest-first list of versions it resolves relative
// specs (V~1), serials, ID prefixes and direct file paths.
package svutil
