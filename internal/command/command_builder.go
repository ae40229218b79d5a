// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/meta"
)

// CommandBuilder constructs the cli.Command for a subcommand using a
// consistent pattern. It wires metadata, appends the global flags sourced
// from ConfigFile, and runs GlobalFlagsValidator before the action.
type CommandBuilder struct {
	Name       string
	Usage      string
	UsageText  string
	Flags      []cli.Flag
	Action     func(context.Context, *cli.Command) error
	Meta       meta.Meta
	ConfigFile string
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: append(cb.Flags, NewGlobalFlags(cb.Name, cb.ConfigFile)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
