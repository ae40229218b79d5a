// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"iter"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/content"
	"github.com/tfctl/nodediff/internal/differ"
	"github.com/tfctl/nodediff/internal/filters"
	"github.com/tfctl/nodediff/internal/output"
)

// ReportActionRunner encapsulates the compare-and-render pattern shared by
// the report commands. FetchFn supplies the two nodes; everything after that
// (options, filtering, rendering, emitting) is common.
type ReportActionRunner struct {
	CommandName string
	FetchFn     func(context.Context, *cli.Command) (base, current content.Node, err error)
}

// Run executes the report action with the provided context and command.
func (rar *ReportActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing %s action for %v", rar.CommandName, m.Args)

	base, current, err := rar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	opts, err := DifferOptions(cmd)
	if err != nil {
		return err
	}

	var narrow differ.Narrow
	if spec := cmd.String("filter"); spec != "" {
		narrow = func(changes iter.Seq[differ.Change]) iter.Seq[differ.Change] {
			return filters.Apply(changes, spec)
		}
	}

	report, err := differ.NewReport(base, current, narrow, opts...)
	if err != nil {
		return err
	}

	oo := OutputOptions(cmd)
	if cmd.Bool("summary") {
		oo.Footer = report.Summary.String()
		if report.Identical {
			oo.Footer = "no changes"
		}
	}

	return output.Rows(report.Rows, oo, Writer(cmd))
}

// NewReportActionRunner creates a ReportActionRunner.
func NewReportActionRunner(
	commandName string,
	fetchFn func(context.Context, *cli.Command) (content.Node, content.Node, error),
) *ReportActionRunner {
	return &ReportActionRunner{
		CommandName: commandName,
		FetchFn:     fetchFn,
	}
}
