// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
	"time"
)

// SortDataset sorts records by a comma-separated list of keys. A leading "-"
// sorts that key descending and a leading "!" compares strings with case.
// Numbers and times compare by value, everything else as strings.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			cmp := compareValues(resultSet[one][field], resultSet[two][field], caseSensitive)
			if cmp != 0 {
				if ascending {
					return cmp < 0
				}
				return cmp > 0
			}
		}
		return false
	})
}

func compareValues(one, two interface{}, caseSensitive bool) int {
	if oneNum, ok := toNumber(one); ok {
		if twoNum, ok := toNumber(two); ok {
			switch {
			case oneNum < twoNum:
				return -1
			case oneNum > twoNum:
				return 1
			}
			return 0
		}
	}

	if oneTime, ok := one.(time.Time); ok {
		if twoTime, ok := two.(time.Time); ok {
			return oneTime.Compare(twoTime)
		}
	}

	// Fall back to string comparison which can also handle bools.
	oneStr := InterfaceToString(one)
	twoStr := InterfaceToString(two)
	if !caseSensitive {
		oneStr = strings.ToLower(oneStr)
		twoStr = strings.ToLower(twoStr)
	}
	return strings.Compare(oneStr, twoStr)
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
