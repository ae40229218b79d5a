// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseTarget splits a "file[::/node/path]" argument into the absolute
// snapshot file and the node path inside it. It returns an error if the file
// does not exist, is empty or is not a regular file.
func ParseTarget(target string) (string, string, error) {
	if target == "" {
		return "", "", os.ErrInvalid
	}

	file, nodePath, _ := strings.Cut(target, "::")

	file, err := filepath.Abs(file)
	if err != nil {
		return "", "", err
	}

	if r, err := os.Stat(file); err != nil {
		return "", "", err
	} else if !r.Mode().IsRegular() {
		return "", "", os.ErrInvalid
	}

	return file, nodePath, nil
}
