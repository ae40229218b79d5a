// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/tfctl/nodediff/internal/content"
	"github.com/tfctl/nodediff/internal/driller"
)

// loadJSON reads a JSON snapshot. gjson walks objects in document order, so
// property and child order are kept as written.
func loadJSON(data []byte, sel string) (*content.MemNode, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	doc := driller.Drill(string(data), sel)
	if !doc.Exists() {
		return nil, fmt.Errorf("nothing found at %q", sel)
	}
	if !doc.IsObject() {
		return nil, errors.New("snapshot root must be an object")
	}

	if err := checkJSONKeys(doc, false); err != nil {
		return nil, err
	}

	root := content.NewRoot(doc.Get("path").String(), doc.Get("primaryType").String())
	if err := fillJSON(root, doc); err != nil {
		return nil, err
	}
	return root, nil
}

func fillJSON(n *content.MemNode, doc gjson.Result) error {
	n.SetVirtual(doc.Get("virtual").Bool())

	var err error
	doc.Get("properties").ForEach(func(key, value gjson.Result) bool {
		var rp rawProperty
		if rp, err = jsonProperty(value); err != nil {
			err = fmt.Errorf("%s/%s: %w", n.Path(), key.String(), err)
			return false
		}
		var p content.Property
		if p, err = buildProperty(key.String(), rp); err != nil {
			err = fmt.Errorf("%s: %w", n.Path(), err)
			return false
		}
		n.PutProperty(p)
		return true
	})
	if err != nil {
		return err
	}

	for _, child := range doc.Get("children").Array() {
		if !child.IsObject() {
			return fmt.Errorf("%s: child must be an object", n.Path())
		}
		if err := checkJSONKeys(child, true); err != nil {
			return fmt.Errorf("%s: %w", n.Path(), err)
		}
		name := child.Get("name").String()
		if err := checkName(name); err != nil {
			return fmt.Errorf("%s: %w", n.Path(), err)
		}
		c := n.AddChild(name, child.Get("primaryType").String())
		if err := fillJSON(c, child); err != nil {
			return err
		}
	}
	return nil
}

func checkJSONKeys(doc gjson.Result, child bool) error {
	var err error
	doc.ForEach(func(key, _ gjson.Result) bool {
		err = checkKey(key.String(), child)
		return err == nil
	})
	return err
}

// jsonProperty decodes a value spec: a scalar, an array, or an object with
// explicit type information.
func jsonProperty(v gjson.Result) (rawProperty, error) {
	switch {
	case v.IsArray():
		rp := rawProperty{multiple: true}
		for _, e := range v.Array() {
			rv, err := jsonScalar(e)
			if err != nil {
				return rawProperty{}, err
			}
			rp.values = append(rp.values, rv)
		}
		return rp, nil

	case v.IsObject():
		rp := rawProperty{
			typeName:         v.Get("type").String(),
			requiredTypeName: v.Get("requiredType").String(),
			size:             v.Get("size").Int(),
		}
		if values := v.Get("values"); values.Exists() {
			inner, err := jsonProperty(values)
			if err != nil {
				return rawProperty{}, err
			}
			if !inner.multiple {
				return rawProperty{}, errors.New("values must be an array")
			}
			rp.multiple = true
			rp.values = inner.values
			return rp, nil
		}
		rv, err := jsonScalar(v.Get("value"))
		if err != nil {
			return rawProperty{}, err
		}
		rp.values = []rawValue{rv}
		return rp, nil
	}

	rv, err := jsonScalar(v)
	if err != nil {
		return rawProperty{}, err
	}
	return rawProperty{values: []rawValue{rv}}, nil
}

func jsonScalar(v gjson.Result) (rawValue, error) {
	switch v.Type {
	case gjson.String:
		return rawValue{kind: rawString, text: v.Str}, nil
	case gjson.Number:
		return rawValue{kind: rawNumber, text: v.Raw}, nil
	case gjson.True, gjson.False:
		return rawValue{kind: rawBool, text: v.Raw}, nil
	case gjson.Null:
		return rawValue{kind: rawNull}, nil
	}
	return rawValue{}, fmt.Errorf("unsupported value %s", v.Raw)
}
