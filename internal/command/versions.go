// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/backend"
	"github.com/tfctl/nodediff/internal/meta"
	"github.com/tfctl/nodediff/internal/output"
)

// versionsCommandAction lists the versions of a snapshot source.
func versionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing versions action for %v", m.Args)

	be, err := backend.NewBackend(ctx, cmd.String("source"), BackendOptions(cmd))
	if err != nil {
		return err
	}

	versions, err := be.Versions(ctx)
	if err != nil {
		return err
	}

	return output.Versions(versions, cmd.String("sort"), OutputOptions(cmd), Writer(cmd))
}

// versionsCommandBuilder constructs the cli.Command for "versions".
func versionsCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return (&CommandBuilder{
		Name:      "versions",
		Usage:     "list the versions of a snapshot source",
		UsageText: "nodediff versions --source SRC [options]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "comma-separated list of columns to sort by (serial, id, name, created, size)",
				Sources: NameSpacedValueSources("versions", cfgFile, "sort"),
			},
		}, NewSourceFlags("versions", cfgFile)...),
		Action:     versionsCommandAction,
		Meta:       meta,
		ConfigFile: cfgFile,
	}).Build()
}
