// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/nodediff/internal/cacheutil"
	"github.com/tfctl/nodediff/internal/command"
	"github.com/tfctl/nodediff/internal/config"
	"github.com/tfctl/nodediff/internal/log"
	"github.com/tfctl/nodediff/internal/version"
)

var ctx = context.Background()

// boolFlags never take a separate value, so the token after them is left
// alone by deduplicateFlags.
var boolFlags = map[string]bool{
	"color":      true,
	"titles":     true,
	"summary":    true,
	"path-style": true,
	"h":          true,
	"help":       true,
}

// flagAliases maps short names onto the long name they stand for.
var flagAliases = map[string]string{
	"c": "color",
	"f": "filter",
	"l": "limit",
	"o": "output",
	"p": "path",
	"s": "sort",
	"t": "titles",
}

// repeatableFlags accumulate values and are never deduplicated.
var repeatableFlags = map[string]bool{
	"ignore": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedup: args=%v", args)

	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands a named argument set from config. An explicit @set
// argument is replaced by the entries of <cmd>.<set>. Without one, the
// entries of <cmd>.defaults are inserted right after the command, so flags
// given on the command line come later and win after deduplication.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	idx := 2
	set := "defaults"
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			idx += i
			// Remove the @set argument.
			args = append(args[:idx:idx], args[idx+1:]...)
			break
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return expandSet(args, entries, idx)
}

// expandSet inserts entries, each split on whitespace, at insertIdx.
func expandSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	result := make([]string, 0, len(args)+len(expanded))
	result = append(result, args[:insertIdx]...)
	result = append(result, expanded...)
	return append(result, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// command, together with its value. Positional arguments keep their places.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name   string
		tokens []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			groups = append(groups, group{tokens: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		g := group{name: name, tokens: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			g.tokens = append(g.tokens, args[i+1])
			i++
		}
		if repeatableFlags[name] {
			g.name = ""
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	result := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name == "" || last[g.name] == i {
			result = append(result, g.tokens...)
		}
	}
	return result
}
