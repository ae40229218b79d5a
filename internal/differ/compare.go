// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/nodediff/internal/content"
)

// IgnoredProperties are bookkeeping properties that are never compared.
var IgnoredProperties = []string{"jcr:uuid", "hippo:paths"}

// BinaryPolicy controls how binary property values are compared. Payloads are
// never read under either policy.
type BinaryPolicy int

const (
	// BinaryOpaque treats binary values as equal only when their identity
	// token and size both match.
	BinaryOpaque BinaryPolicy = iota
	// BinaryIgnore never reports a change between two binary properties.
	// Additions and removals are still reported.
	BinaryIgnore
)

func (p BinaryPolicy) String() string {
	if p == BinaryIgnore {
		return "ignore"
	}
	return "opaque"
}

// ParseBinaryPolicy parses "opaque" or "ignore".
func ParseBinaryPolicy(s string) (BinaryPolicy, error) {
	switch strings.ToLower(s) {
	case "", "opaque":
		return BinaryOpaque, nil
	case "ignore":
		return BinaryIgnore, nil
	}
	return BinaryOpaque, fmt.Errorf("unknown binary policy %q", s)
}

type options struct {
	ignored map[string]bool
	binary  BinaryPolicy
}

// Option customizes a Comparator.
type Option func(*options)

// WithIgnoredProperties adds property names to the ignore list. The built-in
// IgnoredProperties are always ignored.
func WithIgnoredProperties(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				o.ignored[n] = true
			}
		}
	}
}

// WithBinaryPolicy selects how binary values are compared.
func WithBinaryPolicy(p BinaryPolicy) Option {
	return func(o *options) { o.binary = p }
}

type pair struct {
	base, current content.Node
}

// frame is one matched pair of nodes on the work stack. Its level is expanded
// on first visit.
type frame struct {
	pair
	expanded bool
	pending  []Change
	nested   []pair
}

// Comparator produces the changes between two trees as a lazy, forward-only
// sequence. Each level's own changes are yielded, sorted, before any matched
// child subtree is visited; matched children are then visited in order, each
// subtree exhausted before the next begins.
//
// A Comparator is single-pass and must not be shared between goroutines.
type Comparator struct {
	opts  options
	stack []*frame
}

// Diff returns a Comparator for base and current. Nothing is read from either
// tree until the first change is pulled.
func Diff(base, current content.Node, opts ...Option) *Comparator {
	o := options{ignored: map[string]bool{}}
	WithIgnoredProperties(IgnoredProperties...)(&o)
	for _, opt := range opts {
		opt(&o)
	}

	c := &Comparator{opts: o}
	if base == nil || current == nil {
		log.Warn("diff requested with a missing node; nothing to compare")
		return c
	}
	c.stack = []*frame{{pair: pair{base, current}}}
	return c
}

// Changes is shorthand for Diff(base, current, opts...).All().
func Changes(base, current content.Node, opts ...Option) iter.Seq[Change] {
	return Diff(base, current, opts...).All()
}

// Next returns the next change, or false when the sequence is exhausted.
func (c *Comparator) Next() (Change, bool) {
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if !top.expanded {
			c.expand(top)
		}

		if len(top.pending) > 0 {
			change := top.pending[0]
			top.pending = top.pending[1:]
			return change, true
		}

		if len(top.nested) > 0 {
			next := top.nested[0]
			top.nested = top.nested[1:]
			c.stack = append(c.stack, &frame{pair: next})
			continue
		}

		c.stack = c.stack[:len(c.stack)-1]
	}
	return nil, false
}

// All returns the remaining changes as an iterator. Breaking out of the loop
// abandons the rest of the comparison.
func (c *Comparator) All() iter.Seq[Change] {
	return func(yield func(Change) bool) {
		for {
			change, ok := c.Next()
			if !ok || !yield(change) {
				return
			}
		}
	}
}

// Collect drains the comparator into a slice.
func (c *Comparator) Collect() []Change {
	return slices.Collect(c.All())
}

// expand computes a level. A store failure while reading either side drops the
// whole level, including its subtrees, and the walk carries on with the rest.
func (c *Comparator) expand(f *frame) {
	f.expanded = true

	changes, nested, err := c.level(f.base, f.current)
	if err != nil {
		log.WithError(err).Warnf("skipping %s: unable to compare with %s", f.base.Path(), f.current.Path())
		return
	}

	slices.SortFunc(changes, Compare)
	f.pending = changes
	f.nested = nested
}

func (c *Comparator) level(base, current content.Node) ([]Change, []pair, error) {
	var changes []Change
	var nested []pair

	baseProps, err := base.Properties()
	if err != nil {
		return nil, nil, err
	}
	for _, bp := range baseProps {
		if c.skipProperty(bp) {
			continue
		}
		cp, ok, err := current.Property(bp.Name)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			changes = append(changes, NewPropertyRemoved(bp))
			continue
		}
		if c.propertyDiffers(bp, cp) {
			changes = append(changes, NewPropertyChanged(bp, cp))
		}
	}

	currentProps, err := current.Properties()
	if err != nil {
		return nil, nil, err
	}
	for _, cp := range currentProps {
		if c.skipProperty(cp) {
			continue
		}
		_, ok, err := base.Property(cp.Name)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			changes = append(changes, NewPropertyAdded(cp))
		}
	}

	baseChildren, err := base.Children()
	if err != nil {
		return nil, nil, err
	}
	for _, bc := range baseChildren {
		if bc.Virtual() {
			continue
		}
		cc, ok, err := current.Child(bc.Name(), bc.Index())
		if err != nil {
			return nil, nil, err
		}
		if ok && !cc.Virtual() {
			nested = append(nested, pair{bc, cc})
		} else {
			changes = append(changes, NewNodeRemoved(bc))
		}
	}

	currentChildren, err := current.Children()
	if err != nil {
		return nil, nil, err
	}
	for _, cc := range currentChildren {
		if cc.Virtual() {
			continue
		}
		bc, ok, err := base.Child(cc.Name(), cc.Index())
		if err != nil {
			return nil, nil, err
		}
		if !ok || bc.Virtual() {
			changes = append(changes, NewNodeAdded(cc))
		}
	}

	return changes, nested, nil
}

// skipProperty covers the ignore list and reference-typed properties, which
// point at other nodes by identity and are not compared as content.
func (c *Comparator) skipProperty(p content.Property) bool {
	return c.opts.ignored[p.Name] || p.RequiredType == content.TypeReference
}

func (c *Comparator) propertyDiffers(base, current content.Property) bool {
	if c.opts.binary == BinaryIgnore && base.Type == content.TypeBinary && current.Type == content.TypeBinary {
		return false
	}
	if base.Multiple != current.Multiple {
		return true
	}
	if !base.Multiple {
		return !c.sameValue(base.Value(), current.Value())
	}
	if len(base.Values) != len(current.Values) {
		return true
	}
	for i := range base.Values {
		if !c.sameValue(base.Values[i], current.Values[i]) {
			return true
		}
	}
	return false
}

// sameValue compares type and string form. Unknown types never compare equal.
func (c *Comparator) sameValue(a, b content.Value) bool {
	if !a.Type.Valid() || !b.Type.Valid() {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	if a.Type == content.TypeBinary {
		return a.Text == b.Text && a.Size == b.Size
	}
	return a.Text == b.Text
}
