// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows a change sequence with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (default:
// comma, override with NODEDIFF_FILTER_DELIM). A change must match every
// filter to be kept.
//
// Keys:
//
//   - op    : added, removed or changed
//   - kind  : property or node
//   - name  : property or node name
//   - path  : absolute path of the changed item
//   - type  : property type label or node primary type
//   - value : printed property value (the new value for changed properties)
//
// Operators:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains substring (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// The bare shorthands "+" and "-" keep only additions or only removals.
//
// Examples:
//
//   - "kind=node"        : only node additions and removals
//   - "name^jcr:"        : only items whose name starts with "jcr:"
//   - "path!/archive"    : drop everything under an archive path
//   - "+,kind=property"  : only added properties
package filters
