// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package content defines the read-only view of a hierarchical content store
// that the differ consumes: nodes with ordered, typed properties and ordered,
// possibly same-named children. It also provides MemNode, an in-memory tree
// used by the snapshot loaders and by tests.
package content
