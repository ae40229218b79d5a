// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/nodediff/internal/config"
	"github.com/tfctl/nodediff/internal/differ"
)

// Options shapes emitted output.
type Options struct {
	// Format is text, json or yaml.
	Format string
	Color  bool
	Titles bool
	// Padding is the left padding of every column but the first.
	Padding int
	// Width truncates values so text rows fit. Zero means no limit.
	Width int
	// Footer is printed below text output when set.
	Footer  string
	Palette Palette
}

// Palette holds the text colors.
type Palette struct {
	Title   color.Color
	Added   color.Color
	Removed color.Color
	Context color.Color
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format(time.RFC3339)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Rows writes a change report in opts.Format.
func Rows(rows []differ.Row, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json", "yaml":
		if rows == nil {
			rows = []differ.Row{}
		}
		return marshal(rows, opts.Format, w)
	case "", "text":
		TableWriter(rows, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func marshal(v any, format string, w io.Writer) error {
	var out []byte
	var err error
	if format == "json" {
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = yaml.Marshal(v)
	}
	if err != nil {
		log.Errorf("%s marshal: %v", format, err)
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableWriter renders change rows as a borderless table of marker, label,
// type and value. Context rows carry only the label.
func TableWriter(rows []differ.Row, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	if len(rows) == 0 {
		if opts.Footer != "" {
			fmt.Fprintln(w, opts.Footer)
		}
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		addedStyle   = cellStyle
		removedStyle = cellStyle
		contextStyle = cellStyle
		footerStyle  = lipgloss.NewStyle()
	)

	if opts.Color {
		headerStyle = headerStyle.Foreground(opts.Palette.Title)
		footerStyle = footerStyle.Bold(true).Foreground(opts.Palette.Title)
		addedStyle = addedStyle.Foreground(opts.Palette.Added)
		removedStyle = removedStyle.Foreground(opts.Palette.Removed)
		contextStyle = contextStyle.Foreground(opts.Palette.Context)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Marker, r.Label(), r.Type, truncate(r.Value, valueWidth(rows, opts))})
	}

	t := newTable(opts.Padding, func(row int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case rows[row].Marker == differ.MarkerAdded:
			return addedStyle
		case rows[row].Marker == differ.MarkerRemoved:
			return removedStyle
		default:
			return contextStyle
		}
	}).Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("OP", "NAME", "TYPE", "VALUE").BorderHeader(false)
	}
	printTable(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, footerStyle.Render(opts.Footer))
	}
}

func newTable(pad int, rowStyle func(row int) lipgloss.Style) *table.Table {
	return table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := rowStyle(row)
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers()
}

// printTable writes t with plain spaces. lipgloss pads cells with U+00A0,
// which breaks grep, cut and friends downstream.
func printTable(w io.Writer, t *table.Table) {
	fmt.Fprintln(w, strings.ReplaceAll(t.String(), "\u00a0", " "))
}

// valueWidth is what remains of opts.Width after the widest leading columns.
func valueWidth(rows []differ.Row, opts Options) int {
	if opts.Width <= 0 {
		return 0
	}
	var label, typ int
	for _, r := range rows {
		label = max(label, lipgloss.Width(r.Label()))
		typ = max(typ, lipgloss.Width(r.Type))
	}
	// Hidden borders take one cell on each side of each column.
	used := 1 + label + typ + 3*opts.Padding + 8
	return max(opts.Width-used, 16)
}

// truncate elides the middle of s so it fits in width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	keep := (width - 2) / 2
	return string(r[:keep]) + ".." + string(r[len(r)-(width-2-keep):])
}

// DefaultPalette reads colors.title, colors.added, colors.removed and
// colors.context from config. Missing keys get a default picked for the
// terminal background so output stays readable on light and dark themes.
func DefaultPalette() Palette {
	isDark := true
	if IsTerminal(os.Stdout) {
		isDark = lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
	}

	resolveColor := func(key string, light string, dark string) color.Color {
		if colorCfg, err := config.GetString(key); err == nil {
			return lipgloss.Color(colorCfg)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	return Palette{
		Title:   resolveColor("colors.title", "#b08800", "#f6be00"),
		Added:   resolveColor("colors.added", "#007a00", "#5fd75f"),
		Removed: resolveColor("colors.removed", "#b00000", "#ff5f5f"),
		Context: resolveColor("colors.context", "#333333", "#ffffff"),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or 0 when it is not a terminal.
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
