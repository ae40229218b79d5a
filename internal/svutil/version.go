// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package svutil

import (
	"time"
)

// Version is one stored snapshot of a content tree.
type Version struct {
	// ID is the backend identifier: a file name or an object version ID.
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Serial counts versions from the oldest, starting at 1. Zero means the
	// version was given directly rather than listed by a backend.
	Serial    int64     `json:"serial" yaml:"serial"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Size      int64     `json:"size" yaml:"size"`
	// Location is a local file path when File is set, otherwise a backend
	// specific address.
	Location string `json:"location" yaml:"location"`
	File     bool   `json:"file" yaml:"file"`
}

// Number assigns serials to a newest-first list, so the oldest gets 1.
func Number(versions []*Version) {
	for i, v := range versions {
		v.Serial = int64(len(versions) - i)
	}
}
