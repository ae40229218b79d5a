// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/nodediff/internal/content"
)

// Kind separates property changes from node changes. Property changes always
// sort first within a level.
type Kind int

const (
	KindProperty Kind = iota
	KindNode
)

func (k Kind) String() string {
	if k == KindNode {
		return "node"
	}
	return "property"
}

// Change is one atomic difference between two trees. The set of
// implementations is closed: PropertyAdded, PropertyRemoved, PropertyChanged,
// NodeAdded and NodeRemoved.
type Change interface {
	// Path is the absolute path of the changed item. For removals and
	// PropertyChanged it is a base-side path; for additions a current-side one.
	Path() string
	Name() string
	Kind() Kind
	// Type is the property type label or the node's primary type.
	Type() string

	isChange()
}

type propertyChange struct {
	prop content.Property
}

func (c propertyChange) Path() string { return c.prop.Path }
func (c propertyChange) Name() string { return c.prop.Name }
func (c propertyChange) Kind() Kind   { return KindProperty }
func (c propertyChange) Type() string { return c.prop.Type.String() }

// Property returns the underlying property snapshot.
func (c propertyChange) Property() content.Property { return c.prop }

// Value renders the property value for display.
func (c propertyChange) Value() string { return FormatValue(c.prop) }

// PropertyAdded is a property present only in the current tree.
type PropertyAdded struct{ propertyChange }

// PropertyRemoved is a property present only in the base tree.
type PropertyRemoved struct{ propertyChange }

func NewPropertyAdded(p content.Property) PropertyAdded {
	return PropertyAdded{propertyChange{p}}
}

func NewPropertyRemoved(p content.Property) PropertyRemoved {
	return PropertyRemoved{propertyChange{p}}
}

func (PropertyAdded) isChange()   {}
func (PropertyRemoved) isChange() {}

// PropertyChanged is a property present on both sides whose type or values
// differ. It reports the base-side path.
type PropertyChanged struct {
	from, to content.Property
}

func NewPropertyChanged(from, to content.Property) PropertyChanged {
	return PropertyChanged{from: from, to: to}
}

func (c PropertyChanged) Path() string { return c.from.Path }
func (c PropertyChanged) Name() string { return c.from.Name }
func (c PropertyChanged) Kind() Kind   { return KindProperty }
func (c PropertyChanged) Type() string { return c.from.Type.String() }
func (PropertyChanged) isChange()      {}

func (c PropertyChanged) From() content.Property { return c.from }
func (c PropertyChanged) To() content.Property   { return c.to }

// Removed is the old side viewed as a removal.
func (c PropertyChanged) Removed() PropertyRemoved { return NewPropertyRemoved(c.from) }

// Added is the new side viewed as an addition.
func (c PropertyChanged) Added() PropertyAdded { return NewPropertyAdded(c.to) }

type nodeChange struct {
	path     string
	name     string
	index    int
	nodeType string
}

func newNodeChange(n content.Node) nodeChange {
	return nodeChange{path: n.Path(), name: n.Name(), index: n.Index(), nodeType: n.PrimaryType()}
}

func (c nodeChange) Path() string { return c.path }
func (c nodeChange) Name() string { return c.name }
func (c nodeChange) Kind() Kind   { return KindNode }
func (c nodeChange) Type() string { return c.nodeType }

// Index is the 1-based same-name-sibling index of the node.
func (c nodeChange) Index() int { return c.index }

// NodeAdded is a child present only in the current tree.
type NodeAdded struct{ nodeChange }

// NodeRemoved is a child present only in the base tree.
type NodeRemoved struct{ nodeChange }

func NewNodeAdded(n content.Node) NodeAdded     { return NodeAdded{newNodeChange(n)} }
func NewNodeRemoved(n content.Node) NodeRemoved { return NodeRemoved{newNodeChange(n)} }

func (NodeAdded) isChange()   {}
func (NodeRemoved) isChange() {}

// Compare orders changes within one tree level: property changes before node
// changes, then by name, then (nodes) by sibling index. Remaining ties fall
// back to variant and path so the order is total.
func Compare(a, b Change) int {
	if a.Kind() != b.Kind() {
		if a.Kind() == KindProperty {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	if a.Kind() == KindNode {
		if c := cmp.Compare(siblingIndex(a), siblingIndex(b)); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}
	return strings.Compare(a.Path(), b.Path())
}

// Equal reports whether a and b occupy the same position in the order.
func Equal(a, b Change) bool {
	return Compare(a, b) == 0
}

func siblingIndex(c Change) int {
	switch c := c.(type) {
	case NodeAdded:
		return c.Index()
	case NodeRemoved:
		return c.Index()
	}
	return 0
}

func rank(c Change) int {
	switch c.(type) {
	case PropertyRemoved, NodeRemoved:
		return 0
	case PropertyChanged:
		return 1
	case PropertyAdded, NodeAdded:
		return 2
	default:
		panic(fmt.Sprintf("differ: unknown change type %T", c))
	}
}

// FormatValue renders a property value the way the change report prints it.
// Binary payloads are never shown, only their size when known.
func FormatValue(p content.Property) string {
	if p.Type == content.TypeBinary {
		if !p.Multiple && p.Value().Size > 0 {
			return fmt.Sprintf("< binary, %s >", humanize.Bytes(uint64(p.Value().Size)))
		}
		return "< binary >"
	}
	if p.Multiple {
		texts := make([]string, len(p.Values))
		for i, v := range p.Values {
			texts[i] = v.Text
		}
		return "[ " + strings.Join(texts, ", ") + " ]"
	}
	return p.Value().Text
}
