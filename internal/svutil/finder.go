// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package svutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Resolve takes a newest-first list of versions plus specs and returns the
// versions that match them, in spec order. A spec may be:
//
//	(none) - the newest version, V~0.
//	V~N    - the N-th newest version.
//	0, -N  - the same as V~0 and V~N.
//	serial - the version with that serial.
//	file   - a snapshot file read directly, outside the backend.
//	id     - the first version whose ID starts with the spec.
func Resolve(versions []*Version, specs ...string) ([]*Version, error) {
	result := []*Version{}

	if len(specs) == 0 {
		specs = []string{"V~0"}
	}

	for _, spec := range specs {
		v, err := resolveSpec(spec, versions)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	return result, nil
}

func resolveSpec(spec string, versions []*Version) (*Version, error) {
	switch {
	case strings.HasPrefix(strings.ToUpper(spec), "V~"):
		return resolveRelativeSpec(spec, versions)

	case isNumeric(spec):
		return resolveNumericSpec(spec, versions)

	case !hasID(spec, versions) && isFilePath(spec):
		return resolveFileSpec(spec)

	default:
		return resolveIDSpec(spec, versions)
	}
}

// resolveRelativeSpec handles V~N specs.
func resolveRelativeSpec(spec string, versions []*Version) (*Version, error) {
	parts := strings.Split(spec, "~")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid version spec format: %s", spec)
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid version index: %s", parts[1])
	}

	return at(index, versions)
}

// resolveNumericSpec handles serials and zero or negative relative indexes.
func resolveNumericSpec(spec string, versions []*Version) (*Version, error) {
	i, _ := strconv.Atoi(spec)

	if i <= 0 {
		return at(-i, versions)
	}

	for _, v := range versions {
		if v.Serial == int64(i) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("failed to find version with serial %d", i)
}

func at(index int, versions []*Version) (*Version, error) {
	if index < 0 || index > len(versions)-1 {
		return nil, fmt.Errorf("index %d out of range for versions of length %d", index, len(versions))
	}
	return versions[index], nil
}

// resolveFileSpec wraps a local snapshot file as a version.
func resolveFileSpec(spec string) (*Version, error) {
	abs, err := filepath.Abs(spec)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	return &Version{
		ID:        spec,
		Name:      filepath.Base(abs),
		CreatedAt: stat.ModTime(),
		Size:      stat.Size(),
		Location:  abs,
		File:      true,
	}, nil
}

// resolveIDSpec handles version ID prefixes.
func resolveIDSpec(spec string, versions []*Version) (*Version, error) {
	for _, v := range versions {
		if strings.HasPrefix(v.ID, spec) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("failed to find version with ID prefix: %s", spec)
}

func hasID(spec string, versions []*Version) bool {
	for _, v := range versions {
		if v.ID == spec {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// isFilePath reports whether s names an existing regular file.
func isFilePath(s string) bool {
	stat, err := os.Stat(s)
	return err == nil && stat.Mode().IsRegular()
}
