// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/output"
)

// NewGlobalFlags returns the flags shared by every report and listing command.
// ns is the command name and cfgFile the config file to source defaults from.
func NewGlobalFlags(ns, cfgFile string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   output.IsTerminal(os.Stdout),
			Sources: NameSpacedValueSources(ns, cfgFile, "color", "NODEDIFF_COLOR"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Sources: NameSpacedValueSources(ns, cfgFile, "output", "NODEDIFF_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "left padding of text columns",
			Value:   2,
			Sources: NameSpacedValueSources(ns, cfgFile, "padding"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: NameSpacedValueSources(ns, cfgFile, "titles"),
		},
	}

	return
}

// NewReportFlags returns the flags of the commands that compare two trees.
func NewReportFlags(ns, cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "binary",
			Usage:   "binary property comparison (opaque, ignore)",
			Value:   "opaque",
			Sources: NameSpacedValueSources(ns, cfgFile, "binary", "NODEDIFF_BINARY"),
			Validator: func(value string) error {
				return FlagValidators(value, BinaryValidator)
			},
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to changes",
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "force the snapshot format (json, yaml, hcl)",
			Sources: NameSpacedValueSources(ns, cfgFile, "format"),
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringSliceFlag{
			Name:  "ignore",
			Usage: "property names to leave out of the comparison",
		},
		&cli.StringFlag{
			Name:    "select",
			Usage:   "JSON path of the tree inside an export envelope",
			Sources: NameSpacedValueSources(ns, cfgFile, "select"),
		},
		&cli.BoolFlag{
			Name:    "summary",
			Usage:   "print a change summary below text output",
			Sources: NameSpacedValueSources(ns, cfgFile, "summary"),
		},
	}
}

// NewSourceFlags returns the flags that pick and reach a versioned snapshot
// source.
func NewSourceFlags(ns, cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "source",
			Usage:    "snapshot directory, file or s3://bucket/key",
			Sources:  NameSpacedValueSources(ns, cfgFile, "source", "NODEDIFF_SOURCE"),
			Required: true,
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "keep only the newest N versions, 0 for all",
			Sources: NameSpacedValueSources(ns, cfgFile, "limit"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region of the S3 source",
			Sources: NameSpacedValueSources(ns, cfgFile, "region", "NODEDIFF_REGION", "AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile",
			Sources: NameSpacedValueSources(ns, cfgFile, "profile", "NODEDIFF_PROFILE", "AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "endpoint of an S3-compatible store",
			Sources: NameSpacedValueSources(ns, cfgFile, "endpoint", "NODEDIFF_S3_ENDPOINT"),
		},
		&cli.BoolFlag{
			Name:    "path-style",
			Usage:   "use path-style S3 addressing",
			Sources: NameSpacedValueSources(ns, cfgFile, "path-style"),
		},
		&cli.IntFlag{
			Name:    "max-attempts",
			Usage:   "maximum S3 request attempts, 0 for the SDK default",
			Sources: NameSpacedValueSources(ns, cfgFile, "max-attempts"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}
}

// NameSpacedValueSources chains the env vars, then the namespaced config key
// (ns.name), then the global config key (name) as sources for one flag. The
// config keys are skipped when there is no config file.
func NameSpacedValueSources(ns, cfgFile, name string, envs ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, env := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}

	if cfgFile == "" {
		return chain
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(cfgFile)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(cfgFile)))

	return chain
}
