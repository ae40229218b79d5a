// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/nodediff/internal/meta"
)

const bashCompletionScript = `# bash completion for nodediff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_nodediff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff versiondiff versions completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --padding --titles -t"
    local report="--binary --filter -f --format --ignore --select --summary"
    local source="--source --limit -l --region --profile --endpoint --path-style --max-attempts"

    case "$cmd" in
        diff)
            local opts="$common $report"
            ;;
        versiondiff)
            local opts="$common $report $source --path -p"
            ;;
        versions)
            local opts="$common $source --sort -s"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --binary)
            COMPREPLY=( $(compgen -W "opaque ignore" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "json yaml hcl" -- "$cur") )
            return 0
            ;;
        --source)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* || "$cmd" != "diff" ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # diff takes snapshot files
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _nodediff nodediff
`

const zshCompletionScript = `#compdef nodediff

_nodediff() {
  local -a cmds
  cmds=(
    'diff:compare two content tree snapshots'
    'versiondiff:compare two versions of a snapshot source'
    'versions:list the versions of a snapshot source'
    'completion:generate shell completion script'
  )

  local -a common report source
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[column padding]:padding'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )
  report=(
  '--binary[binary comparison]:policy:(opaque ignore)'
  '(-f --filter)'{-f,--filter}'[change filters]:filters'
  '--format[snapshot format]:format:(json yaml hcl)'
  '--ignore[ignored properties]:names'
  '--select[tree inside an export envelope]:path'
  '--summary[print a change summary]'
  )
  source=(
  '--source[snapshot source]:source:_files'
  '(-l --limit)'{-l,--limit}'[limit versions]:limit'
  '--region[AWS region]:region'
  '--profile[AWS profile]:profile'
  '--endpoint[S3 endpoint]:url'
  '--path-style[path-style S3 addressing]'
  '--max-attempts[S3 request attempts]:attempts'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'nodediff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C $common $report '1:base:_files' '2:current:_files'
      ;;
    versiondiff)
      _arguments -C $common $report $source \
        '(-p --path)'{-p,--path}'[node path]:path' \
        '*:version'
      ;;
    versions)
      _arguments -C $common $source '(-s --sort)'{-s,--sort}'[sort columns]:columns'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _nodediff nodediff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: nodediff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "nodediff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
