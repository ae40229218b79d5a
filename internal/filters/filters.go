// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"iter"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/nodediff/internal/differ"
)

// filterRegex splits a filter expression into key, operator and target. The
// operator is one of = ^ ~ < > @ or /, optionally prefixed with '!'. Examples:
// "kind=node", "name^jcr:", "path!/archive", "value>10".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Keys a filter can match against.
const (
	KeyOp    = "op"
	KeyKind  = "kind"
	KeyName  = "name"
	KeyPath  = "path"
	KeyType  = "type"
	KeyValue = "value"
)

var validKeys = map[string]bool{
	KeyOp: true, KeyKind: true, KeyName: true, KeyPath: true, KeyType: true, KeyValue: true,
}

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid entries are logged and skipped. The shorthands "+" and "-" stand for
// op=added and op=removed.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Allow an override for values that contain commas.
	delim := ","
	if d, ok := os.LookupEnv("NODEDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for filterSpec := range strings.SplitSeq(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		switch filterSpec {
		case "":
			continue
		case differ.MarkerAdded:
			filters = append(filters, Filter{Key: KeyOp, Operand: "=", Value: "added"})
			continue
		case differ.MarkerRemoved:
			filters = append(filters, Filter{Key: KeyOp, Operand: "=", Value: "removed"})
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[1]))
		operand := parts[2]
		target := parts[3]

		if !validKeys[key] {
			log.Errorf("invalid filter: unknown key %q in %s", key, filterSpec)
			continue
		}
		if operand == "" {
			log.Error("invalid filter: missing operator in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Apply returns the changes that match every filter in spec. Filtering happens
// before rendering so context rows are only printed for changes that survive.
func Apply(changes iter.Seq[differ.Change], spec string) iter.Seq[differ.Change] {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return changes
	}

	return func(yield func(differ.Change) bool) {
		for change := range changes {
			if !Match(change, filters) {
				continue
			}
			if !yield(change) {
				return
			}
		}
	}
}

// Match reports whether change passes all filters.
func Match(change differ.Change, filters []Filter) bool {
	for _, filter := range filters {
		value := field(change, filter.Key)

		var result bool
		if _, numeric := toFloat64(filter.Value); numeric && isNumericOperand(filter.Operand) {
			// A numeric bound never matches a non-numeric value.
			num, ok := toFloat64(value)
			result = ok && checkNumericOperand(num, filter)
		} else {
			result = checkStringOperand(value, filter)
		}

		if !result {
			return false
		}
	}
	return true
}

// Op names the change variant: added, removed or changed.
func Op(change differ.Change) string {
	switch change.(type) {
	case differ.PropertyAdded, differ.NodeAdded:
		return "added"
	case differ.PropertyRemoved, differ.NodeRemoved:
		return "removed"
	case differ.PropertyChanged:
		return "changed"
	}
	return ""
}

// field resolves a filter key against a change. The value of a
// PropertyChanged is its new value; node changes have no value.
func field(change differ.Change, key string) string {
	switch key {
	case KeyOp:
		return Op(change)
	case KeyKind:
		return change.Kind().String()
	case KeyName:
		return change.Name()
	case KeyPath:
		return change.Path()
	case KeyType:
		return change.Type()
	case KeyValue:
		switch c := change.(type) {
		case differ.PropertyAdded:
			return c.Value()
		case differ.PropertyRemoved:
			return c.Value()
		case differ.PropertyChanged:
			return c.Added().Value()
		}
	}
	return ""
}

func isNumericOperand(operand string) bool {
	return operand == "<" || operand == ">"
}

// checkNumericOperand compares a numeric value against the filter value.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}

// toFloat64 parses a printed value as a number.
func toFloat64(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
