// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/differ"
	"github.com/tfctl/nodediff/internal/snapshot"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that single-flag validators
// cannot see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("summary") && c.String("output") != "text" {
		log.Warnf("--summary is ignored with %s output", c.String("output"))
	}
	if c.String("endpoint") != "" && !strings.HasPrefix(c.String("source"), "s3://") {
		return fmt.Errorf("--endpoint needs an s3:// source")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func BinaryValidator(value any) error {
	_, err := differ.ParseBinaryPolicy(value.(string))
	return err
}

func FormatValidator(value any) error {
	var validFormats = []string{string(snapshot.FormatJSON), string(snapshot.FormatYAML), string(snapshot.FormatHCL)}
	if value.(string) != "" && !slices.Contains(validFormats, value.(string)) {
		return fmt.Errorf("must be one of %v", validFormats)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if value.(int) < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
