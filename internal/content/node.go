// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a path does not resolve to a node.
var ErrNotFound = errors.New("node not found")

// Node is a read-only handle on a content node. Enumeration methods may block
// on the backing store and may fail; callers decide how to degrade.
type Node interface {
	// Path is the absolute path. Same-name siblings past the first carry an
	// index suffix on their last segment, e.g. /a/item[2].
	Path() string
	Name() string
	// Index is the 1-based position among siblings sharing Name.
	Index() int
	PrimaryType() string
	// Virtual nodes are read-only projections and are excluded from diffs.
	Virtual() bool

	Properties() ([]Property, error)
	Property(name string) (Property, bool, error)
	Children() ([]Node, error)
	Child(name string, index int) (Node, bool, error)
}

// MemNode is an in-memory Node. Build trees with NewRoot and AddChild.
type MemNode struct {
	name        string
	index       int
	primaryType string
	virtual     bool
	rootPath    string
	parent      *MemNode
	props       []Property
	children    []*MemNode
	err         error
}

// NewRoot returns a root node located at the given absolute path. An empty
// path means "/".
func NewRoot(path, primaryType string) *MemNode {
	if path == "" {
		path = "/"
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	name := ""
	index := 1
	if path != "/" {
		// Ignore parse errors; a malformed root segment still works as a name.
		if n, i, err := ParseSegment(LastSegment(path)); err == nil {
			name, index = n, i
		} else {
			name = LastSegment(path)
		}
	}
	return &MemNode{name: name, index: index, primaryType: primaryType, rootPath: path}
}

// AddChild appends a child and returns it. The sibling index is assigned from
// the number of existing children with the same name.
func (n *MemNode) AddChild(name, primaryType string) *MemNode {
	index := 1
	for _, c := range n.children {
		if c.name == name {
			index++
		}
	}
	child := &MemNode{name: name, index: index, primaryType: primaryType, parent: n}
	n.children = append(n.children, child)
	return child
}

// SetProperty sets a single-valued property, replacing any existing property
// of the same name in place so declaration order is kept.
func (n *MemNode) SetProperty(name string, v Value) *MemNode {
	return n.PutProperty(Property{
		Name:         name,
		Type:         v.Type,
		RequiredType: v.Type,
		Values:       []Value{v},
	})
}

// SetMultiProperty sets a multi-valued property of type t.
func (n *MemNode) SetMultiProperty(name string, t PropertyType, values ...Value) *MemNode {
	return n.PutProperty(Property{
		Name:         name,
		Type:         t,
		RequiredType: t,
		Multiple:     true,
		Values:       values,
	})
}

// SetRequiredType overrides the declared type of an existing property.
func (n *MemNode) SetRequiredType(name string, t PropertyType) *MemNode {
	for i := range n.props {
		if n.props[i].Name == name {
			n.props[i].RequiredType = t
		}
	}
	return n
}

// PutProperty stores p as-is (Path is derived on read).
func (n *MemNode) PutProperty(p Property) *MemNode {
	p.Path = ""
	for i := range n.props {
		if n.props[i].Name == p.Name {
			n.props[i] = p
			return n
		}
	}
	n.props = append(n.props, p)
	return n
}

// RemoveProperty drops the named property if present.
func (n *MemNode) RemoveProperty(name string) *MemNode {
	for i := range n.props {
		if n.props[i].Name == name {
			n.props = append(n.props[:i], n.props[i+1:]...)
			break
		}
	}
	return n
}

// SetVirtual marks the node as a virtual projection.
func (n *MemNode) SetVirtual(v bool) *MemNode {
	n.virtual = v
	return n
}

// FailWith makes every enumeration on this node return err. It simulates a
// store that cannot read the node.
func (n *MemNode) FailWith(err error) *MemNode {
	n.err = err
	return n
}

func (n *MemNode) Path() string {
	if n.parent == nil {
		return n.rootPath
	}
	return JoinPath(n.parent.Path(), Segment(n.name, n.index))
}

func (n *MemNode) Name() string        { return n.name }
func (n *MemNode) Index() int          { return n.index }
func (n *MemNode) PrimaryType() string { return n.primaryType }
func (n *MemNode) Virtual() bool       { return n.virtual }

func (n *MemNode) Properties() ([]Property, error) {
	if n.err != nil {
		return nil, n.err
	}
	path := n.Path()
	props := make([]Property, len(n.props))
	for i, p := range n.props {
		p.Path = JoinPath(path, p.Name)
		props[i] = p
	}
	return props, nil
}

func (n *MemNode) Property(name string) (Property, bool, error) {
	if n.err != nil {
		return Property{}, false, n.err
	}
	for _, p := range n.props {
		if p.Name == name {
			p.Path = JoinPath(n.Path(), p.Name)
			return p, true, nil
		}
	}
	return Property{}, false, nil
}

func (n *MemNode) Children() ([]Node, error) {
	if n.err != nil {
		return nil, n.err
	}
	nodes := make([]Node, len(n.children))
	for i, c := range n.children {
		nodes[i] = c
	}
	return nodes, nil
}

func (n *MemNode) Child(name string, index int) (Node, bool, error) {
	if n.err != nil {
		return nil, false, n.err
	}
	for _, c := range n.children {
		if c.name == name && c.index == index {
			return c, true, nil
		}
	}
	return nil, false, nil
}

// Lookup resolves an absolute path against the tree rooted at n. The path may
// be the root's own path or any descendant of it.
func (n *MemNode) Lookup(path string) (*MemNode, error) {
	root := n.Path()
	rel := path
	if root != "/" {
		switch {
		case path == root:
			return n, nil
		case len(path) > len(root) && path[:len(root)+1] == root+"/":
			rel = path[len(root):]
		default:
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
	}

	current := n
	for _, seg := range SplitPath(rel) {
		name, index, err := ParseSegment(seg)
		if err != nil {
			return nil, err
		}
		var next *MemNode
		for _, c := range current.children {
			if c.name == name && c.index == index {
				next = c
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		current = next
	}
	return current, nil
}
