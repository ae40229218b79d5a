// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/nodediff/internal/content"
)

// ErrUnknownFormat is returned when neither the name nor the bytes identify a
// snapshot format.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Extensions lists the file extensions recognized as snapshots.
var Extensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".hcl":  FormatHCL,
}

// IsSnapshotFile reports whether name carries a snapshot extension.
func IsSnapshotFile(name string) bool {
	_, ok := Extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

type loadOptions struct {
	format Format
	sel    string
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

// WithFormat forces a format instead of detecting it.
func WithFormat(f Format) LoadOption {
	return func(o *loadOptions) { o.format = f }
}

// WithSelect loads the tree found at a dot path inside a JSON export, e.g.
// "export.tree". It has no effect on other formats.
func WithSelect(path string) LoadOption {
	return func(o *loadOptions) { o.sel = path }
}

// LoadFile reads and loads the snapshot at path.
func LoadFile(path string, opts ...LoadOption) (*content.MemNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Load(path, data, opts...)
}

// Load builds a content tree from snapshot bytes. name is used for format
// detection and in error messages. Without a known extension the format is
// sniffed: a leading '{' means JSON, otherwise YAML is tried and then HCL.
func Load(name string, data []byte, opts ...LoadOption) (*content.MemNode, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	format := o.format
	if format == "" {
		format = Extensions[strings.ToLower(filepath.Ext(name))]
	}
	log.Debugf("loading snapshot %s as %q", name, format)

	var root *content.MemNode
	var err error
	switch format {
	case FormatJSON:
		root, err = loadJSON(data, o.sel)
	case FormatYAML:
		root, err = loadYAML(data)
	case FormatHCL:
		root, err = loadHCL(name, data)
	case "":
		root, err = sniff(name, data, o.sel)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}
	return root, nil
}

func sniff(name string, data []byte, sel string) (*content.MemNode, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrUnknownFormat
	}
	if trimmed[0] == '{' {
		return loadJSON(data, sel)
	}

	root, yamlErr := loadYAML(data)
	if yamlErr == nil {
		return root, nil
	}
	root, hclErr := loadHCL(name, data)
	if hclErr == nil {
		return root, nil
	}
	log.Debugf("sniff %s: yaml: %v, hcl: %v", name, yamlErr, hclErr)
	return nil, ErrUnknownFormat
}

// nodeKeys are the fields a JSON or YAML node may carry. name is only valid
// on children.
var nodeKeys = map[string]bool{
	"name":        true,
	"path":        true,
	"primaryType": true,
	"virtual":     true,
	"properties":  true,
	"children":    true,
}

// checkKey rejects fields that are not part of a node, so arbitrary JSON or
// YAML documents are not taken for snapshots.
func checkKey(key string, child bool) error {
	if !nodeKeys[key] || (key == "name" && !child) {
		return fmt.Errorf("unexpected key %q", key)
	}
	return nil
}

// checkName rejects child names that would not survive a round trip through
// a path.
func checkName(name string) error {
	switch {
	case name == "":
		return errors.New("child without a name")
	case strings.ContainsAny(name, "/[]"):
		return fmt.Errorf("invalid child name %q", name)
	}
	return nil
}

// Resolve finds the node at path inside a loaded tree. An empty path is the
// root itself; a relative path is taken from the root.
func Resolve(root *content.MemNode, path string) (*content.MemNode, error) {
	switch {
	case path == "":
		return root, nil
	case !strings.HasPrefix(path, "/"):
		path = content.JoinPath(root.Path(), path)
	}
	return root.Lookup(strings.TrimSuffix(path, "/"))
}

// rawKind is the shape of a decoded scalar before typing.
type rawKind int

const (
	rawNull rawKind = iota
	rawString
	rawNumber
	rawBool
)

type rawValue struct {
	kind rawKind
	text string
}

// rawProperty is a property as decoded from any format, before its type
// names are resolved.
type rawProperty struct {
	typeName         string
	requiredTypeName string
	multiple         bool
	values           []rawValue
	size             int64
}

func inferType(v rawValue) content.PropertyType {
	switch v.kind {
	case rawString:
		return content.TypeString
	case rawNumber:
		return content.TypeNumeric
	case rawBool:
		return content.TypeBoolean
	}
	return content.TypeUndefined
}

// buildProperty types a decoded property. An explicit type wins; otherwise the
// type is inferred from the first value, and an empty array is a string array.
func buildProperty(name string, rp rawProperty) (content.Property, error) {
	t := content.TypeString
	switch {
	case rp.typeName != "":
		var err error
		if t, err = content.ParsePropertyType(rp.typeName); err != nil {
			return content.Property{}, fmt.Errorf("property %s: %w", name, err)
		}
	case len(rp.values) > 0:
		t = inferType(rp.values[0])
	}

	rt := t
	if rp.requiredTypeName != "" {
		var err error
		if rt, err = content.ParsePropertyType(rp.requiredTypeName); err != nil {
			return content.Property{}, fmt.Errorf("property %s: %w", name, err)
		}
	}

	if !rp.multiple && len(rp.values) != 1 {
		return content.Property{}, fmt.Errorf("property %s: expected one value, got %d", name, len(rp.values))
	}

	values := make([]content.Value, len(rp.values))
	for i, v := range rp.values {
		values[i] = content.NewValue(t, v.text)
		if t == content.TypeBinary && !rp.multiple {
			values[i].Size = rp.size
		}
	}

	return content.Property{
		Name:         name,
		Type:         t,
		RequiredType: rt,
		Multiple:     rp.multiple,
		Values:       values,
	}, nil
}
