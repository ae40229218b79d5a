// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/nodediff/internal/content"
	"github.com/tfctl/nodediff/internal/differ"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testBuildFiltersCase represents a single test case for TestBuildFilters.
type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
}

// testCheckStringOperandCase represents a single test case for
// TestCheckStringOperand.
type testCheckStringOperandCase struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Filter Filter `yaml:"filter"`
	Want   bool   `yaml:"want"`
}

// testCheckNumericOperandCase represents a single test case for
// TestCheckNumericOperand.
type testCheckNumericOperandCase struct {
	Name   string  `yaml:"name"`
	Value  float64 `yaml:"value"`
	Filter Filter  `yaml:"filter"`
	Want   bool    `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	require.NoError(t, loadTestData("filters_test_build_filters.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv("NODEDIFF_FILTER_DELIM", tt.Delimiter)
			}

			got := BuildFilters(tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, filter := range tt.Want {
				assert.Equal(t, filter.Key, got[i].Key)
				assert.Equal(t, filter.Operand, got[i].Operand)
				assert.Equal(t, filter.Value, got[i].Value)
				assert.Equal(t, filter.Negate, got[i].Negate)
			}
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	var tests []testCheckStringOperandCase
	require.NoError(t, loadTestData("filters_test_check_string_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkStringOperand(tt.Value, tt.Filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	var tests []testCheckNumericOperandCase
	require.NoError(t, loadTestData("filters_test_check_numeric_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkNumericOperand(tt.Value, tt.Filter))
		})
	}
}

// sampleChanges returns one change of every variant under /site.
func sampleChanges() []differ.Change {
	base := content.NewRoot("/site", "nt:folder")
	base.SetProperty("count", content.NumericValue(3))
	base.SetProperty("title", content.StringValue("Old"))
	base.SetProperty("jcr:legacy", content.StringValue("x"))
	base.AddChild("archive", "nt:folder")

	current := content.NewRoot("/site", "nt:folder")
	current.SetProperty("count", content.NumericValue(12))
	current.SetProperty("title", content.StringValue("Old"))
	current.SetProperty("jcr:title", content.StringValue("New"))
	current.AddChild("news", "nt:unstructured")

	return differ.Diff(base, current).Collect()
}

func names(changes []differ.Change) []string {
	var out []string
	for _, c := range changes {
		out = append(out, Op(c)+":"+c.Name())
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no filter", "", []string{"changed:count", "added:jcr:title", "removed:jcr:legacy", "removed:archive", "added:news"}},
		{"additions", "+", []string{"added:jcr:title", "added:news"}},
		{"removed nodes", "-,kind=node", []string{"removed:archive"}},
		{"name prefix", "name^jcr:", []string{"added:jcr:title", "removed:jcr:legacy"}},
		{"numeric value", "value>10", []string{"changed:count"}},
		{"negated path", "path!/archive$", []string{"changed:count", "added:jcr:title", "removed:jcr:legacy", "added:news"}},
		{"type", "type=nt:unstructured", []string{"added:news"}},
		{"nothing", "op=changed,kind=node", nil},
	}

	changes := sampleChanges()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Apply(slices.Values(changes), tt.spec))
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestApplyStopsEarly(t *testing.T) {
	changes := sampleChanges()
	var seen int
	for range Apply(slices.Values(changes), "kind=property") {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
