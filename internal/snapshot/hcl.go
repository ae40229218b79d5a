// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/tfctl/nodediff/internal/content"
)

// hclEvalContext lets HCL snapshots use a few string helpers in values.
var hclEvalContext = &hcl.EvalContext{
	Functions: map[string]function.Function{
		"format": stdlib.FormatFunc,
		"join":   stdlib.JoinFunc,
		"lower":  stdlib.LowerFunc,
		"upper":  stdlib.UpperFunc,
	},
}

// loadHCL reads an HCL snapshot:
//
//	path         = "/content"
//	primary_type = "nt:folder"
//
//	property "title" { value = "Home" }
//
//	node "page" {
//	  primary_type = "nt:unstructured"
//	  property "tags" { values = ["a", "b"] }
//	}
//
// Blocks are read from the syntax tree in source order.
func loadHCL(name string, data []byte) (*content.MemNode, error) {
	file, diags := hclsyntax.ParseConfig(data, name, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.New("unexpected HCL body")
	}

	path, err := hclStringAttr(body, "path")
	if err != nil {
		return nil, err
	}
	primaryType, err := hclStringAttr(body, "primary_type")
	if err != nil {
		return nil, err
	}

	root := content.NewRoot(path, primaryType)
	if err := fillHCL(root, body); err != nil {
		return nil, err
	}
	return root, nil
}

func fillHCL(n *content.MemNode, body *hclsyntax.Body) error {
	if attr, ok := body.Attributes["virtual"]; ok {
		v, err := hclValue(attr)
		if err != nil {
			return err
		}
		var virtual bool
		if err := gocty.FromCtyValue(v, &virtual); err != nil {
			return fmt.Errorf("%s: virtual: %w", n.Path(), err)
		}
		n.SetVirtual(virtual)
	}

	for _, block := range body.Blocks {
		if len(block.Labels) != 1 {
			return fmt.Errorf("%s: %s block needs exactly one label", block.DefRange().String(), block.Type)
		}
		name := block.Labels[0]
		if block.Type == "node" {
			if err := checkName(name); err != nil {
				return fmt.Errorf("%s: %w", block.DefRange().String(), err)
			}
		}

		switch block.Type {
		case "property":
			rp, err := hclProperty(block.Body)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", n.Path(), name, err)
			}
			p, err := buildProperty(name, rp)
			if err != nil {
				return fmt.Errorf("%s: %w", n.Path(), err)
			}
			n.PutProperty(p)

		case "node":
			primaryType, err := hclStringAttr(block.Body, "primary_type")
			if err != nil {
				return err
			}
			if err := fillHCL(n.AddChild(name, primaryType), block.Body); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%s: unexpected block type %q", block.DefRange().String(), block.Type)
		}
	}

	return nil
}

func hclProperty(body *hclsyntax.Body) (rawProperty, error) {
	var rp rawProperty
	var err error

	if rp.typeName, err = hclStringAttr(body, "type"); err != nil {
		return rawProperty{}, err
	}
	if rp.requiredTypeName, err = hclStringAttr(body, "required_type"); err != nil {
		return rawProperty{}, err
	}

	if attr, ok := body.Attributes["size"]; ok {
		v, err := hclValue(attr)
		if err != nil {
			return rawProperty{}, err
		}
		if err := gocty.FromCtyValue(v, &rp.size); err != nil {
			return rawProperty{}, fmt.Errorf("size: %w", err)
		}
	}

	valueAttr, hasValue := body.Attributes["value"]
	valuesAttr, hasValues := body.Attributes["values"]

	switch {
	case hasValue && hasValues:
		return rawProperty{}, errors.New("set value or values, not both")

	case hasValues:
		v, err := hclValue(valuesAttr)
		if err != nil {
			return rawProperty{}, err
		}
		if v.IsNull() || !v.CanIterateElements() || v.Type().IsMapType() || v.Type().IsObjectType() {
			return rawProperty{}, errors.New("values must be a list")
		}
		rp.multiple = true
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			rv, err := ctyScalar(elem)
			if err != nil {
				return rawProperty{}, err
			}
			rp.values = append(rp.values, rv)
		}

	case hasValue:
		v, err := hclValue(valueAttr)
		if err != nil {
			return rawProperty{}, err
		}
		rv, err := ctyScalar(v)
		if err != nil {
			return rawProperty{}, err
		}
		rp.values = []rawValue{rv}

	default:
		rp.values = []rawValue{{kind: rawNull}}
	}

	return rp, nil
}

func hclValue(attr *hclsyntax.Attribute) (cty.Value, error) {
	v, diags := attr.Expr.Value(hclEvalContext)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return v, nil
}

// hclStringAttr returns the named string attribute, or "" when it is absent.
func hclStringAttr(body *hclsyntax.Body, name string) (string, error) {
	attr, ok := body.Attributes[name]
	if !ok {
		return "", nil
	}
	v, err := hclValue(attr)
	if err != nil {
		return "", err
	}
	var s string
	if err := gocty.FromCtyValue(v, &s); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

func ctyScalar(v cty.Value) (rawValue, error) {
	if v.IsNull() {
		return rawValue{kind: rawNull}, nil
	}
	if !v.IsKnown() {
		return rawValue{}, errors.New("value is not known")
	}

	switch v.Type() {
	case cty.String:
		return rawValue{kind: rawString, text: v.AsString()}, nil
	case cty.Number:
		return rawValue{kind: rawNumber, text: v.AsBigFloat().Text('f', -1)}, nil
	case cty.Bool:
		return rawValue{kind: rawBool, text: fmt.Sprintf("%t", v.True())}, nil
	}
	return rawValue{}, fmt.Errorf("unsupported value of type %s", v.Type().FriendlyName())
}
