// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex matches a single path segment with an optional 1-based
// same-name-sibling index, e.g. "item" or "item[2]".
var segmentRegex = regexp.MustCompile(`^([^/\[\]]+)(\[(\d+)\])?$`)

// Segment returns the path segment for a child. Index 1 is implicit.
func Segment(name string, index int) string {
	if index <= 1 {
		return name
	}
	return fmt.Sprintf("%s[%d]", name, index)
}

// ParseSegment splits a segment into name and index.
func ParseSegment(seg string) (string, int, error) {
	m := segmentRegex.FindStringSubmatch(seg)
	if m == nil {
		return "", 0, fmt.Errorf("invalid path segment %q", seg)
	}
	index := 1
	if m[3] != "" {
		i, err := strconv.Atoi(m[3])
		if err != nil || i < 1 {
			return "", 0, fmt.Errorf("invalid index in path segment %q", seg)
		}
		index = i
	}
	return m[1], index, nil
}

// JoinPath appends a segment to an absolute parent path.
func JoinPath(parent, seg string) string {
	if parent == "/" || parent == "" {
		return "/" + seg
	}
	return parent + "/" + seg
}

// SplitPath returns the non-empty segments of an absolute path.
func SplitPath(p string) []string {
	var segs []string
	for s := range strings.SplitSeq(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// LastSegment returns everything after the final slash.
func LastSegment(p string) string {
	return p[strings.LastIndexByte(p, '/')+1:]
}
