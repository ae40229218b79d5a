// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/tfctl/nodediff/internal/content"
)

const (
	MarkerAdded   = "+"
	MarkerRemoved = "-"
)

// Row is one printable line of a change report. Context rows name an ancestor
// of the rows below them and carry no marker, type or value.
type Row struct {
	Marker string `json:"marker" yaml:"marker"`
	Depth  int    `json:"depth" yaml:"depth"`
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Value  string `json:"value" yaml:"value"`
}

// Label is the name indented two spaces per level.
func (r Row) Label() string {
	return strings.Repeat("  ", r.Depth) + r.Name
}

// IsContext reports whether the row only names an ancestor.
func (r Row) IsContext() bool {
	return r.Marker == ""
}

// Render turns an ordered change sequence into indented report rows. Paths of
// removals (and the old side of PropertyChanged) are taken relative to
// removalRoot, paths of additions relative to additionRoot.
//
// Each ancestor directory is printed once when first entered; the stack of
// printed ancestors lives only for the duration of one iteration, so the
// returned sequence can be ranged over again with a fresh changes sequence.
//
// A change whose path is not under its root is a caller bug and panics.
func Render(changes iter.Seq[Change], removalRoot, additionRoot string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		stack := []string{""}

		for change := range changes {
			root := removalRoot
			if isAddition(change) {
				root = additionRoot
			}
			dir := ancestorDir(change.Path(), root)

			if dir != stack[len(stack)-1] {
				var entered []string
				for !slices.Contains(stack, dir) {
					entered = append(entered, dir)
					dir = dir[:strings.LastIndexByte(dir, '/')]
				}

				for stack[len(stack)-1] != dir {
					stack = stack[:len(stack)-1]
				}

				for i := len(entered) - 1; i >= 0; i-- {
					row := Row{Depth: len(stack) - 1, Name: content.LastSegment(entered[i])}
					if !yield(row) {
						return
					}
					stack = append(stack, entered[i])
				}
			}

			for _, row := range changeRows(change, len(stack)-1) {
				if !yield(row) {
					return
				}
			}
		}
	}
}

// RenderAll collects Render into a slice.
func RenderAll(changes iter.Seq[Change], removalRoot, additionRoot string) []Row {
	return slices.Collect(Render(changes, removalRoot, additionRoot))
}

func isAddition(c Change) bool {
	switch c.(type) {
	case PropertyAdded, NodeAdded:
		return true
	}
	return false
}

// ancestorDir strips root from path and drops the last segment, leaving the
// relative directory that holds the changed item. Items directly under the
// root, and the root itself, live in "".
func ancestorDir(path, root string) string {
	root = strings.TrimSuffix(root, "/")
	if path == root {
		return ""
	}
	if !strings.HasPrefix(path, root+"/") {
		panic(fmt.Sprintf("differ: change path %q is not under root %q", path, root))
	}
	rel := path[len(root):]
	return rel[:strings.LastIndexByte(rel, '/')]
}

func changeRows(change Change, depth int) []Row {
	switch c := change.(type) {
	case PropertyAdded:
		return []Row{propertyRow(MarkerAdded, c.propertyChange, depth)}
	case PropertyRemoved:
		return []Row{propertyRow(MarkerRemoved, c.propertyChange, depth)}
	case PropertyChanged:
		return []Row{
			propertyRow(MarkerRemoved, c.Removed().propertyChange, depth),
			propertyRow(MarkerAdded, c.Added().propertyChange, depth),
		}
	case NodeAdded:
		return []Row{nodeRow(MarkerAdded, c.nodeChange, depth)}
	case NodeRemoved:
		return []Row{nodeRow(MarkerRemoved, c.nodeChange, depth)}
	default:
		panic(fmt.Sprintf("differ: unknown change type %T", change))
	}
}

func propertyRow(marker string, c propertyChange, depth int) Row {
	return Row{Marker: marker, Depth: depth, Name: c.Name(), Type: c.Type(), Value: c.Value()}
}

func nodeRow(marker string, c nodeChange, depth int) Row {
	return Row{Marker: marker, Depth: depth, Name: content.Segment(c.name, c.index), Type: c.Type()}
}
