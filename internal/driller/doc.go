// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller digs a sub-document out of a JSON export with a dot path,
// so a content tree wrapped in an envelope can be loaded directly.
package driller
