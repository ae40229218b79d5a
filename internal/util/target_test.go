// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	tests := []struct {
		name     string
		target   string
		chdir    bool
		wantFile string
		wantPath string
		errIs    error
	}{
		{name: "file only", target: file, wantFile: file},
		{name: "file with node path", target: file + "::/content/site/page", wantFile: file, wantPath: "/content/site/page"},
		{name: "relative node path", target: file + "::page[2]", wantFile: file, wantPath: "page[2]"},
		{name: "empty node path", target: file + "::", wantFile: file},
		{name: "node path keeps later separators", target: file + "::a::b", wantFile: file, wantPath: "a::b"},
		{name: "relative file", target: "site.json::/x", chdir: true, wantFile: file, wantPath: "/x"},
		{name: "missing file", target: filepath.Join(dir, "nope.json"), errIs: os.ErrNotExist},
		{name: "directory", target: dir + "::/x", errIs: os.ErrInvalid},
		{name: "empty", target: "", errIs: os.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.chdir {
				t.Chdir(dir)
			}

			gotFile, gotPath, err := ParseTarget(tt.target)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}

			require.NoError(t, err)
			// Resolve symlinked temp dirs (macOS /var -> /private/var).
			wantFile, _ := filepath.EvalSymlinks(tt.wantFile)
			gotFile, _ = filepath.EvalSymlinks(gotFile)
			assert.Equal(t, wantFile, gotFile)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}
