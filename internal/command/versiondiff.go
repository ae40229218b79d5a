// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/backend"
	"github.com/tfctl/nodediff/internal/content"
	"github.com/tfctl/nodediff/internal/differ"
	"github.com/tfctl/nodediff/internal/meta"
	"github.com/tfctl/nodediff/internal/snapshot"
	"github.com/tfctl/nodediff/internal/svutil"
)

// ErrNoSelection is returned when the version picker is left without two
// versions chosen.
var ErrNoSelection = errors.New("two versions must be selected")

// selectVersions is the interactive picker behind "versiondiff +".
var selectVersions = differ.SelectVersions

// versiondiffCommandAction compares two versions of one snapshot source.
func versiondiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	return NewReportActionRunner("versiondiff", versiondiffFetch).Run(ctx, cmd)
}

func versiondiffFetch(ctx context.Context, cmd *cli.Command) (content.Node, content.Node, error) {
	be, err := backend.NewBackend(ctx, cmd.String("source"), BackendOptions(cmd))
	if err != nil {
		return nil, nil, err
	}

	specs, err := versionSpecs(ctx, cmd.Args().Slice(), be)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("versiondiff specs: %v", specs)

	versions, bodies, err := backend.Snapshots(ctx, be, specs...)
	if err != nil {
		return nil, nil, err
	}

	var nodes [2]*content.MemNode
	for i, v := range versions {
		root, err := snapshot.Load(v.Name, bodies[i], LoadOptions(cmd)...)
		if err != nil {
			return nil, nil, fmt.Errorf("version %s: %w", v.ID, err)
		}
		if nodes[i], err = snapshot.Resolve(root, cmd.String("path")); err != nil {
			return nil, nil, fmt.Errorf("version %s: %w", v.ID, err)
		}
	}

	return nodes[0], nodes[1], nil
}

// versionSpecs turns the positional arguments into a base and a current
// version spec. No arguments compare the two newest versions, one argument
// compares it to the newest, and "+" asks the user to pick two.
func versionSpecs(ctx context.Context, args []string, be backend.Backend) ([]string, error) {
	switch {
	case len(args) == 0:
		return []string{"V~1", "V~0"}, nil

	case len(args) == 1 && args[0] == "+":
		candidates, err := be.Versions(ctx)
		if err != nil {
			return nil, err
		}
		picked := selectVersions(candidates)
		if len(picked) != 2 {
			return nil, ErrNoSelection
		}
		// The older pick is the base.
		picked = slices.Clone(picked)
		slices.SortFunc(picked, func(a, b *svutil.Version) int {
			return int(a.Serial - b.Serial)
		})
		return []string{
			strconv.FormatInt(picked[0].Serial, 10),
			strconv.FormatInt(picked[1].Serial, 10),
		}, nil

	case len(args) == 1:
		return []string{args[0], "V~0"}, nil

	case len(args) == 2:
		return args, nil
	}

	return nil, fmt.Errorf("versiondiff takes at most two versions, got %d", len(args))
}

// versiondiffCommandBuilder constructs the cli.Command for "versiondiff".
func versiondiffCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:      "versiondiff",
		Usage:     "compare two versions of a snapshot source",
		UsageText: "nodediff versiondiff [BASE [CURRENT] | +] --source SRC [options]",
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "node to compare inside both versions",
				Sources: NameSpacedValueSources("versiondiff", cfgFile, "path"),
			},
		}, NewReportFlags("versiondiff", cfgFile)...), NewSourceFlags("versiondiff", cfgFile)...),
		Action:     versiondiffCommandAction,
		Meta:       meta,
		ConfigFile: cfgFile,
	}).Build()
}
