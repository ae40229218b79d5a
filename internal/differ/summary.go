// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"iter"
)

// Counts tallies one kind of change.
type Counts struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
	Changed int `json:"changed" yaml:"changed"`
}

func (c Counts) Total() int {
	return c.Added + c.Removed + c.Changed
}

// Summary tallies changes per kind.
type Summary struct {
	Properties Counts `json:"properties" yaml:"properties"`
	Nodes      Counts `json:"nodes" yaml:"nodes"`
}

// Add counts one change.
func (s *Summary) Add(change Change) {
	counts := &s.Properties
	if change.Kind() == KindNode {
		counts = &s.Nodes
	}

	switch change.(type) {
	case PropertyAdded, NodeAdded:
		counts.Added++
	case PropertyRemoved, NodeRemoved:
		counts.Removed++
	case PropertyChanged:
		counts.Changed++
	default:
		panic(fmt.Sprintf("differ: unknown change type %T", change))
	}
}

// Empty reports whether nothing was counted.
func (s Summary) Empty() bool {
	return s.Properties.Total()+s.Nodes.Total() == 0
}

// String renders the summary as "+N -M ~K" over both kinds.
func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d ~%d",
		s.Properties.Added+s.Nodes.Added,
		s.Properties.Removed+s.Nodes.Removed,
		s.Properties.Changed+s.Nodes.Changed)
}

// Tally passes changes through unchanged while counting them into s. The
// counts are complete once the returned sequence has been drained.
func Tally(changes iter.Seq[Change], s *Summary) iter.Seq[Change] {
	return func(yield func(Change) bool) {
		for change := range changes {
			s.Add(change)
			if !yield(change) {
				return
			}
		}
	}
}
