// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot loads exported content trees from JSON, YAML or HCL into
// in-memory nodes that the differ can compare.
//
// JSON and YAML share one shape:
//
//	{
//	  "path": "/content/site",
//	  "primaryType": "nt:folder",
//	  "properties": {
//	    "title": "Home",
//	    "tags": ["a", "b"],
//	    "logo": {"type": "binary", "value": "sha256:...", "size": 5120}
//	  },
//	  "children": [{"name": "page", "primaryType": "nt:unstructured"}]
//	}
//
// Scalar values are typed by their JSON or YAML kind; the object form names a
// type explicitly and may add a requiredType. HCL uses property and node
// blocks with the same fields.
package snapshot
