// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one dot-separated segment: a key with an optional
// [n] array index. Keys may carry namespace prefixes such as jcr:content.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_:-]+)(\[(\d+)\])?$`)

// Drill navigates JSON with a dot path such as "export.trees[1].root". An
// array without an index resolves to its only element, or to the whole array
// when it holds more than one. An empty path returns the whole document. A
// malformed or unmatched path returns an empty Result.
func Drill(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)
	if path == "" {
		return current
	}

	for p := range strings.SplitSeq(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		key := matches[1]
		index := -1
		if matches[3] != "" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return gjson.Result{}
			}
			index = i
		}

		// Escape gjson path syntax so keys like "a:b" and "v1*" are literal.
		val := current.Get(gjson.Escape(key))
		if !val.Exists() {
			return gjson.Result{}
		}

		if val.IsArray() {
			arr := val.Array()
			switch {
			case index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
			case index < len(arr):
				val = arr[index]
			default:
				return gjson.Result{}
			}
		} else if index > 0 {
			return gjson.Result{}
		}

		current = val
	}

	return current
}
