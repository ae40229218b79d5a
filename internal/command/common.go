// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/backend"
	"github.com/tfctl/nodediff/internal/config"
	"github.com/tfctl/nodediff/internal/differ"
	"github.com/tfctl/nodediff/internal/meta"
	"github.com/tfctl/nodediff/internal/output"
	"github.com/tfctl/nodediff/internal/snapshot"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Writer is where a command emits its results, the root command's Writer or
// stdout.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// DifferOptions builds comparator options from --binary, --ignore and the
// ignore list in config.
func DifferOptions(cmd *cli.Command) ([]differ.Option, error) {
	policy, err := differ.ParseBinaryPolicy(cmd.String("binary"))
	if err != nil {
		return nil, err
	}

	ignored, _ := config.GetStringSlice("ignore", []string{})
	ignored = append(ignored, cmd.StringSlice("ignore")...)

	return []differ.Option{
		differ.WithBinaryPolicy(policy),
		differ.WithIgnoredProperties(ignored...),
	}, nil
}

// OutputOptions builds output options from the global flags. Values are only
// truncated to the terminal width when writing to a terminal.
func OutputOptions(cmd *cli.Command) output.Options {
	oo := output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
	}
	if Writer(cmd) == io.Writer(os.Stdout) {
		oo.Width = output.TerminalWidth(os.Stdout)
	}
	if oo.Color {
		oo.Palette = output.DefaultPalette()
	}
	return oo
}

// BackendOptions builds backend options from the source flags.
func BackendOptions(cmd *cli.Command) backend.Options {
	return backend.Options{
		Region:      cmd.String("region"),
		Profile:     cmd.String("profile"),
		Endpoint:    cmd.String("endpoint"),
		PathStyle:   cmd.Bool("path-style"),
		MaxAttempts: cmd.Int("max-attempts"),
		Limit:       cmd.Int("limit"),
	}
}

// LoadOptions builds snapshot load options from --format and --select.
func LoadOptions(cmd *cli.Command) []snapshot.LoadOption {
	var opts []snapshot.LoadOption
	if f := cmd.String("format"); f != "" {
		opts = append(opts, snapshot.WithFormat(snapshot.Format(f)))
	}
	if sel := cmd.String("select"); sel != "" {
		opts = append(opts, snapshot.WithSelect(sel))
	}
	return opts
}
