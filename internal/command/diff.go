// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/content"
	"github.com/tfctl/nodediff/internal/meta"
	"github.com/tfctl/nodediff/internal/snapshot"
	"github.com/tfctl/nodediff/internal/util"
)

// diffCommandAction compares two snapshot files, each optionally narrowed to
// a node with file::/node/path.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	return NewReportActionRunner("diff", diffFetch).Run(ctx, cmd)
}

func diffFetch(_ context.Context, cmd *cli.Command) (content.Node, content.Node, error) {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("diff needs BASE and CURRENT, got %d argument(s)", len(args))
	}

	base, err := loadTarget(args[0], LoadOptions(cmd)...)
	if err != nil {
		return nil, nil, err
	}
	current, err := loadTarget(args[1], LoadOptions(cmd)...)
	if err != nil {
		return nil, nil, err
	}

	return base, current, nil
}

// loadTarget loads the snapshot named by a file[::/node/path] target and
// returns the node it points at.
func loadTarget(target string, opts ...snapshot.LoadOption) (*content.MemNode, error) {
	file, nodePath, err := util.ParseTarget(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", target, err)
	}

	root, err := snapshot.LoadFile(file, opts...)
	if err != nil {
		return nil, err
	}

	n, err := snapshot.Resolve(root, nodePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	return n, nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:       "diff",
		Usage:      "compare two content tree snapshots",
		UsageText:  "nodediff diff BASE[::/node/path] CURRENT[::/node/path] [options]",
		Flags:      NewReportFlags("diff", cfgFile),
		Action:     diffCommandAction,
		Meta:       meta,
		ConfigFile: cfgFile,
	}).Build()
}
