// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PropertyType is the type tag carried by every property value.
type PropertyType int

const (
	TypeUndefined PropertyType = iota
	TypeString
	TypeNumeric
	TypeBoolean
	TypeDate
	TypeBinary
	TypeReference
	TypeName
	TypePath
)

var typeNames = map[PropertyType]string{
	TypeUndefined: "undefined",
	TypeString:    "string",
	TypeNumeric:   "numeric",
	TypeBoolean:   "boolean",
	TypeDate:      "date",
	TypeBinary:    "binary",
	TypeReference: "reference",
	TypeName:      "name",
	TypePath:      "path",
}

// typeAliases maps the names other content stores use onto our fixed set.
var typeAliases = map[string]PropertyType{
	"long":          TypeNumeric,
	"double":        TypeNumeric,
	"decimal":       TypeNumeric,
	"number":        TypeNumeric,
	"bool":          TypeBoolean,
	"weakreference": TypeReference,
	"uri":           TypeString,
}

// String returns the lowercase label of the type. Types outside the known set
// render as "< unknown >".
func (t PropertyType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "< unknown >"
}

// Valid reports whether t is one of the known property types.
func (t PropertyType) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParsePropertyType converts a type name to a PropertyType. Matching is case
// insensitive and accepts a few common aliases (long, double, decimal...).
func ParsePropertyType(s string) (PropertyType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == key {
			return t, nil
		}
	}
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return TypeUndefined, fmt.Errorf("unknown property type %q", s)
}

// Value is one typed property value. Text is the string form used for
// comparison. For binary values Text is an opaque identity token (a digest, a
// blob id) and Size is the payload length; the payload itself is never held.
type Value struct {
	Type PropertyType `json:"type" yaml:"type"`
	Text string       `json:"text" yaml:"text"`
	Size int64        `json:"size,omitempty" yaml:"size,omitempty"`
}

// NewValue returns a value of the given type.
func NewValue(t PropertyType, text string) Value {
	return Value{Type: t, Text: text}
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Text: s}
}

func NumericValue(n float64) Value {
	return Value{Type: TypeNumeric, Text: strconv.FormatFloat(n, 'f', -1, 64)}
}

func BooleanValue(b bool) Value {
	return Value{Type: TypeBoolean, Text: strconv.FormatBool(b)}
}

// DateValue formats t as RFC 3339 with millisecond precision.
func DateValue(t time.Time) Value {
	return Value{Type: TypeDate, Text: t.UTC().Format("2006-01-02T15:04:05.000Z07:00")}
}

// BinaryValue describes a binary payload by identity token and size.
func BinaryValue(token string, size int64) Value {
	return Value{Type: TypeBinary, Text: token, Size: size}
}

func ReferenceValue(id string) Value {
	return Value{Type: TypeReference, Text: id}
}

// Property is a named, typed value or ordered array of values attached to a
// node. Type is the type of the stored values; RequiredType is the type the
// node definition declares, which may be TypeUndefined.
type Property struct {
	Name         string       `json:"name" yaml:"name"`
	Path         string       `json:"path" yaml:"path"`
	Type         PropertyType `json:"type" yaml:"type"`
	RequiredType PropertyType `json:"requiredType" yaml:"requiredType"`
	Multiple     bool         `json:"multiple" yaml:"multiple"`
	Values       []Value      `json:"values" yaml:"values"`
}

// Value returns the single value of the property. For a multi-valued property
// it returns the first value, or the zero Value when there is none.
func (p Property) Value() Value {
	if len(p.Values) == 0 {
		return Value{Type: p.Type}
	}
	return p.Values[0]
}
