// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSnapshots creates files in dir, each one hour newer than the last.
func writeSnapshots(t *testing.T, dir string, names ...string) {
	t.Helper()
	start := time.Now().Add(-time.Duration(len(names)) * time.Hour)
	for i, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(`{"path": "/`+name+`"}`), 0o600))
		mod := start.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
}

func TestVersions(t *testing.T) {
	dir := t.TempDir()
	writeSnapshots(t, dir, "monday.json", "tuesday.yaml", "notes.txt", "wednesday.hcl")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.json"), 0o755))

	be, err := NewBackendLocal(context.Background(), FromPath(dir))
	require.NoError(t, err)
	assert.Equal(t, "local", be.Type())
	assert.Equal(t, dir, be.String())

	versions, err := be.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, versions, 3)

	var ids []string
	for _, v := range versions {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"wednesday.hcl", "tuesday.yaml", "monday.json"}, ids)
	assert.Equal(t, int64(3), versions[0].Serial)
	assert.Equal(t, int64(1), versions[2].Serial)
	assert.Equal(t, filepath.Join(dir, "monday.json"), versions[2].Location)
	assert.False(t, versions[0].File)

	body, err := be.Snapshot(context.Background(), versions[2])
	require.NoError(t, err)
	assert.Equal(t, `{"path": "/monday.json"}`, string(body))
}

func TestVersionsLimit(t *testing.T) {
	dir := t.TempDir()
	writeSnapshots(t, dir, "a.json", "b.json", "c.json")

	be, err := NewBackendLocal(context.Background(), FromPath(dir), WithLimit(2))
	require.NoError(t, err)

	versions, err := be.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "c.json", versions[0].ID)
	assert.Equal(t, int64(3), versions[0].Serial, "serials count the whole history")
}

func TestVersionsSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeSnapshots(t, dir, "only.yaml")

	be, err := NewBackendLocal(context.Background(), FromPath(filepath.Join(dir, "only.yaml")))
	require.NoError(t, err)

	versions, err := be.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "only.yaml", versions[0].ID)
	assert.Equal(t, int64(1), versions[0].Serial)
}

func TestFromPathMissing(t *testing.T) {
	_, err := NewBackendLocal(context.Background(), FromPath(filepath.Join(t.TempDir(), "nope")))
	assert.Error(t, err)
}
