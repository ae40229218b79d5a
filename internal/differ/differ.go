// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"iter"

	"github.com/apex/log"

	"github.com/tfctl/nodediff/internal/content"
)

// ErrNothingToCompare is returned when either side of a report is missing.
var ErrNothingToCompare = errors.New("nothing to compare")

// Narrow reshapes a change sequence before it is rendered, e.g. to filter it.
type Narrow func(iter.Seq[Change]) iter.Seq[Change]

// Report is the rendered outcome of one comparison.
type Report struct {
	Rows []Row `json:"rows" yaml:"rows"`
	// Summary counts the changes that were rendered.
	Summary Summary `json:"summary" yaml:"summary"`
	// Identical is true when the trees had no changes at all, before any
	// narrowing.
	Identical bool `json:"identical" yaml:"identical"`
}

// NewReport compares base and current and renders the changes relative to
// each node's own path.
func NewReport(base, current content.Node, narrow Narrow, opts ...Option) (Report, error) {
	log.Debugf(">> NewReport()")

	if base == nil || current == nil {
		return Report{}, ErrNothingToCompare
	}

	var all, shown Summary
	changes := Tally(Diff(base, current, opts...).All(), &all)
	if narrow != nil {
		changes = narrow(changes)
	}
	changes = Tally(changes, &shown)

	rows := RenderAll(changes, base.Path(), current.Path())
	log.Debugf("report: %d rows, %s of %s", len(rows), shown, all)

	return Report{
		Rows:      rows,
		Summary:   shown,
		Identical: all.Empty(),
	}, nil
}
