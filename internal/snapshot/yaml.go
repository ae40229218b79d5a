// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/nodediff/internal/content"
)

// loadYAML reads a YAML snapshot with the same shape as the JSON one. It walks
// yaml.Node trees rather than decoding into maps so mapping order survives.
func loadYAML(data []byte) (*content.MemNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty YAML document")
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, errors.New("snapshot root must be a mapping")
	}

	if err := checkYAMLKeys(top, false); err != nil {
		return nil, err
	}

	root := content.NewRoot(yamlString(yamlField(top, "path")), yamlString(yamlField(top, "primaryType")))
	if err := fillYAML(root, top); err != nil {
		return nil, err
	}
	return root, nil
}

func fillYAML(n *content.MemNode, m *yaml.Node) error {
	if v := yamlField(m, "virtual"); v != nil {
		var virtual bool
		if err := v.Decode(&virtual); err != nil {
			return fmt.Errorf("%s: virtual: %w", n.Path(), err)
		}
		n.SetVirtual(virtual)
	}

	if props := yamlField(m, "properties"); props != nil {
		if props.Kind != yaml.MappingNode {
			return fmt.Errorf("%s: properties must be a mapping", n.Path())
		}
		for i := 0; i+1 < len(props.Content); i += 2 {
			name := props.Content[i].Value
			rp, err := yamlProperty(props.Content[i+1])
			if err != nil {
				return fmt.Errorf("%s/%s: %w", n.Path(), name, err)
			}
			p, err := buildProperty(name, rp)
			if err != nil {
				return fmt.Errorf("%s: %w", n.Path(), err)
			}
			n.PutProperty(p)
		}
	}

	if children := yamlField(m, "children"); children != nil {
		if children.Kind != yaml.SequenceNode {
			return fmt.Errorf("%s: children must be a list", n.Path())
		}
		for _, child := range children.Content {
			if child.Kind != yaml.MappingNode {
				return fmt.Errorf("%s: child must be a mapping (line %d)", n.Path(), child.Line)
			}
			if err := checkYAMLKeys(child, true); err != nil {
				return fmt.Errorf("%s: %w", n.Path(), err)
			}
			name := yamlString(yamlField(child, "name"))
			if err := checkName(name); err != nil {
				return fmt.Errorf("%s: %w (line %d)", n.Path(), err, child.Line)
			}
			c := n.AddChild(name, yamlString(yamlField(child, "primaryType")))
			if err := fillYAML(c, child); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkYAMLKeys(m *yaml.Node, child bool) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if err := checkKey(m.Content[i].Value, child); err != nil {
			return fmt.Errorf("%w (line %d)", err, m.Content[i].Line)
		}
	}
	return nil
}

func yamlProperty(v *yaml.Node) (rawProperty, error) {
	switch v.Kind {
	case yaml.SequenceNode:
		rp := rawProperty{multiple: true}
		for _, e := range v.Content {
			rv, err := yamlScalar(e)
			if err != nil {
				return rawProperty{}, err
			}
			rp.values = append(rp.values, rv)
		}
		return rp, nil

	case yaml.MappingNode:
		rp := rawProperty{
			typeName:         yamlString(yamlField(v, "type")),
			requiredTypeName: yamlString(yamlField(v, "requiredType")),
		}
		if size := yamlField(v, "size"); size != nil {
			if err := size.Decode(&rp.size); err != nil {
				return rawProperty{}, fmt.Errorf("size: %w", err)
			}
		}
		if values := yamlField(v, "values"); values != nil {
			inner, err := yamlProperty(values)
			if err != nil {
				return rawProperty{}, err
			}
			if !inner.multiple {
				return rawProperty{}, errors.New("values must be a list")
			}
			rp.multiple = true
			rp.values = inner.values
			return rp, nil
		}
		rv := rawValue{kind: rawNull}
		if value := yamlField(v, "value"); value != nil {
			var err error
			if rv, err = yamlScalar(value); err != nil {
				return rawProperty{}, err
			}
		}
		rp.values = []rawValue{rv}
		return rp, nil
	}

	rv, err := yamlScalar(v)
	if err != nil {
		return rawProperty{}, err
	}
	return rawProperty{values: []rawValue{rv}}, nil
}

func yamlScalar(v *yaml.Node) (rawValue, error) {
	if v.Kind == yaml.AliasNode && v.Alias != nil {
		v = v.Alias
	}
	if v.Kind != yaml.ScalarNode {
		return rawValue{}, fmt.Errorf("unsupported value at line %d", v.Line)
	}

	switch v.ShortTag() {
	case "!!null":
		return rawValue{kind: rawNull}, nil
	case "!!bool":
		var b bool
		if err := v.Decode(&b); err != nil {
			return rawValue{}, err
		}
		return rawValue{kind: rawBool, text: strconv.FormatBool(b)}, nil
	case "!!int", "!!float":
		return rawValue{kind: rawNumber, text: v.Value}, nil
	}
	return rawValue{kind: rawString, text: v.Value}, nil
}

// yamlField returns the value node for key in mapping m, or nil.
func yamlField(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func yamlString(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	return n.Value
}
