// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/nodediff/internal/svutil"
)

// versionColumns are the dataset keys of a version listing, in column order.
var versionColumns = []string{"serial", "id", "name", "created", "size"}

// VersionDataset flattens versions into records keyed by versionColumns.
func VersionDataset(versions []*svutil.Version) []map[string]interface{} {
	dataset := make([]map[string]interface{}, 0, len(versions))
	for _, v := range versions {
		dataset = append(dataset, map[string]interface{}{
			"serial":  v.Serial,
			"id":      v.ID,
			"name":    v.Name,
			"created": v.CreatedAt,
			"size":    v.Size,
		})
	}
	return dataset
}

// Versions writes a version listing sorted by sortSpec (see SortDataset).
// Text output humanizes ages and sizes.
func Versions(versions []*svutil.Version, sortSpec string, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if sortSpec != "" {
		dataset := VersionDataset(versions)
		SortDataset(dataset, sortSpec)
		byID := make(map[string]*svutil.Version, len(versions))
		for _, v := range versions {
			byID[v.ID] = v
		}
		sorted := make([]*svutil.Version, 0, len(dataset))
		for _, rec := range dataset {
			sorted = append(sorted, byID[rec["id"].(string)])
		}
		versions = sorted
	}

	switch opts.Format {
	case "json", "yaml":
		if versions == nil {
			versions = []*svutil.Version{}
		}
		return marshal(versions, opts.Format, w)
	case "", "text":
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}

	if len(versions) == 0 {
		return nil
	}

	headerStyle := lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
	cellStyle := lipgloss.NewStyle().Align(lipgloss.Left)
	footerStyle := lipgloss.NewStyle()
	if opts.Color {
		footerStyle = footerStyle.Bold(true).Foreground(opts.Palette.Title)
		headerStyle = headerStyle.Foreground(opts.Palette.Title)
		cellStyle = cellStyle.Foreground(opts.Palette.Context)
	}

	var cells [][]string
	for _, v := range versions {
		cells = append(cells, []string{
			InterfaceToString(v.Serial, "-"),
			v.ID,
			humanize.Time(v.CreatedAt),
			humanize.Bytes(uint64(max(v.Size, 0))),
		})
	}

	t := newTable(opts.Padding, func(row int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	}).Rows(cells...)
	if opts.Titles {
		t = t.Headers("SERIAL", "ID", "CREATED", "SIZE").BorderHeader(false)
	}
	printTable(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, footerStyle.Render(opts.Footer))
	}
	return nil
}
