// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyType(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    PropertyType
		wantErr bool
	}{
		{"lower", "string", TypeString, false},
		{"mixed case", "Boolean", TypeBoolean, false},
		{"jcr long", "Long", TypeNumeric, false},
		{"jcr double", "DOUBLE", TypeNumeric, false},
		{"weak reference", "WeakReference", TypeReference, false},
		{"padded", "  date ", TypeDate, false},
		{"unknown", "blob", TypeUndefined, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePropertyType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertyTypeString(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "reference", TypeReference.String())
	assert.Equal(t, "< unknown >", PropertyType(99).String())
	assert.False(t, PropertyType(99).Valid())
	assert.True(t, TypeUndefined.Valid())
}

func TestSegment(t *testing.T) {
	assert.Equal(t, "item", Segment("item", 1))
	assert.Equal(t, "item[3]", Segment("item", 3))

	name, index, err := ParseSegment("item[3]")
	require.NoError(t, err)
	assert.Equal(t, "item", name)
	assert.Equal(t, 3, index)

	name, index, err = ParseSegment("jcr:content")
	require.NoError(t, err)
	assert.Equal(t, "jcr:content", name)
	assert.Equal(t, 1, index)

	_, _, err = ParseSegment("item[0]")
	assert.Error(t, err)
	_, _, err = ParseSegment("a/b")
	assert.Error(t, err)
}

func TestJoinAndSplitPath(t *testing.T) {
	assert.Equal(t, "/a", JoinPath("/", "a"))
	assert.Equal(t, "/a/b", JoinPath("/a", "b"))
	assert.Equal(t, []string{"a", "b[2]"}, SplitPath("/a/b[2]/"))
	assert.Empty(t, SplitPath("/"))
	assert.Equal(t, "c", LastSegment("/a/b/c"))
	assert.Equal(t, "", LastSegment("/"))
}

func TestMemNodePathsAndIndexes(t *testing.T) {
	root := NewRoot("/content/site", "nt:folder")
	assert.Equal(t, "/content/site", root.Path())
	assert.Equal(t, "site", root.Name())

	first := root.AddChild("item", "nt:unstructured")
	second := root.AddChild("item", "nt:unstructured")
	other := root.AddChild("other", "nt:unstructured")

	assert.Equal(t, 1, first.Index())
	assert.Equal(t, 2, second.Index())
	assert.Equal(t, 1, other.Index())
	assert.Equal(t, "/content/site/item", first.Path())
	assert.Equal(t, "/content/site/item[2]", second.Path())

	got, ok, err := root.Child("item", 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok, err = root.Child("item", 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemNodeProperties(t *testing.T) {
	root := NewRoot("/", "rep:root")
	n := root.AddChild("doc", "nt:unstructured")
	n.SetProperty("title", StringValue("one"))
	n.SetMultiProperty("tags", TypeString, StringValue("a"), StringValue("b"))
	n.SetProperty("title", StringValue("two"))

	props, err := n.Properties()
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "title", props[0].Name)
	assert.Equal(t, "/doc/title", props[0].Path)
	assert.Equal(t, "two", props[0].Value().Text)
	assert.True(t, props[1].Multiple)

	p, ok, err := n.Property("tags")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, p.Values, 2)

	n.RemoveProperty("title")
	_, ok, _ = n.Property("title")
	assert.False(t, ok)
}

func TestMemNodeFailWith(t *testing.T) {
	boom := errors.New("store unavailable")
	n := NewRoot("/", "rep:root").FailWith(boom)

	_, err := n.Properties()
	assert.ErrorIs(t, err, boom)
	_, err = n.Children()
	assert.ErrorIs(t, err, boom)
	_, _, err = n.Child("x", 1)
	assert.ErrorIs(t, err, boom)
}

func TestMemNodeLookup(t *testing.T) {
	root := NewRoot("/content", "nt:folder")
	a := root.AddChild("a", "nt:folder")
	a.AddChild("b", "nt:unstructured")
	b2 := a.AddChild("b", "nt:unstructured")

	got, err := root.Lookup("/content/a/b[2]")
	require.NoError(t, err)
	assert.Same(t, b2, got)

	got, err = root.Lookup("/content")
	require.NoError(t, err)
	assert.Same(t, root, got)

	_, err = root.Lookup("/content/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = root.Lookup("/elsewhere/a")
	assert.ErrorIs(t, err, ErrNotFound)
}
