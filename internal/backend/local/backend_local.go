// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"

	"github.com/tfctl/nodediff/internal/snapshot"
	"github.com/tfctl/nodediff/internal/svutil"
)

// BackendLocal is a directory of snapshot files, or a single file. Each file
// is one version and modification time orders them.
type BackendLocal struct {
	Ctx   context.Context
	Path  string
	Limit int
}

// BackendLocalOption configures a BackendLocal.
type BackendLocalOption = func(ctx context.Context, be *BackendLocal) error

// NewBackendLocal returns a BackendLocal built from options.
func NewBackendLocal(ctx context.Context, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{Ctx: ctx}

	for _, opt := range options {
		if err := opt(ctx, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

// WithDefaults uses the working directory.
func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, be *BackendLocal) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		be.Path = cwd
		return nil
	}
}

// FromPath sets the directory or file holding the snapshots. Relative paths
// are resolved against the working directory.
func FromPath(path string) BackendLocalOption {
	return func(ctx context.Context, be *BackendLocal) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("snapshot source: %w", err)
		}
		be.Path = abs
		return nil
	}
}

// WithLimit keeps only the newest n versions. Zero or less keeps all.
func WithLimit(n int) BackendLocalOption {
	return func(ctx context.Context, be *BackendLocal) error {
		be.Limit = n
		return nil
	}
}

// Versions implements backend.Backend. It scans be.Path for snapshot files
// and lists them newest first. Files with the same modification time are
// ordered by name, descending.
func (be *BackendLocal) Versions(ctx context.Context) ([]*svutil.Version, error) {
	stat, err := os.Stat(be.Path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if stat.Mode().IsRegular() {
		paths = []string{be.Path}
	} else {
		entries, err := os.ReadDir(be.Path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Type().IsRegular() && snapshot.IsSnapshotFile(e.Name()) {
				paths = append(paths, filepath.Join(be.Path, e.Name()))
			}
		}
	}

	versions := make([]*svutil.Version, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", p)
			continue
		}
		versions = append(versions, &svutil.Version{
			ID:        info.Name(),
			Name:      info.Name(),
			CreatedAt: info.ModTime(),
			Size:      info.Size(),
			Location:  p,
		})
	}

	sort.Slice(versions, func(i, j int) bool {
		if versions[i].CreatedAt.Equal(versions[j].CreatedAt) {
			return versions[i].Name > versions[j].Name
		}
		return versions[i].CreatedAt.After(versions[j].CreatedAt)
	})
	svutil.Number(versions)

	if be.Limit > 0 && len(versions) > be.Limit {
		versions = versions[:be.Limit]
	}
	log.Debugf("local versions: path=%s, count=%d", be.Path, len(versions))

	return versions, nil
}

// Snapshot implements backend.Backend.
func (be *BackendLocal) Snapshot(ctx context.Context, v *svutil.Version) ([]byte, error) {
	body, err := os.ReadFile(v.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return body, nil
}

func (be *BackendLocal) String() string {
	return be.Path
}

func (be *BackendLocal) Type() string {
	return "local"
}
