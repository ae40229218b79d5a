// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the changes between two content trees and renders
// them as an indented report.
//
// Diff walks both trees lazily, one level at a time, and yields Change values
// in a stable order. Render turns that sequence into Rows with each ancestor
// printed once above the changes beneath it.
package differ
