// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/nodediff/internal/backend/local"
	"github.com/tfctl/nodediff/internal/backend/s3"
	"github.com/tfctl/nodediff/internal/svutil"
)

// Backend is a snapshot source with a version history.
type Backend interface {
	// Versions returns the available versions, newest first.
	Versions(ctx context.Context) ([]*svutil.Version, error)
	// Snapshot returns the raw body of one version.
	Snapshot(ctx context.Context, v *svutil.Version) ([]byte, error)
	String() string
	Type() string
}

// Options carries the source settings that come from flags and config.
type Options struct {
	Region      string
	Profile     string
	Endpoint    string
	PathStyle   bool
	MaxAttempts int
	Limit       int
}

// NewBackend returns the Backend for source. s3://bucket/key selects the S3
// backend and anything else is a local directory or file.
func NewBackend(ctx context.Context, source string, opts Options) (Backend, error) {
	log.Debugf("NewBackend: source=%s", source)

	if strings.HasPrefix(source, "s3://") {
		return s3.NewBackendS3(ctx,
			s3.FromURL(source),
			s3.WithRegion(opts.Region),
			s3.WithProfile(opts.Profile),
			s3.WithEndpoint(opts.Endpoint, opts.PathStyle),
			s3.WithMaxAttempts(opts.MaxAttempts),
			s3.WithLimit(opts.Limit),
		)
	}

	if source == "" {
		return nil, fmt.Errorf("no snapshot source given")
	}
	return local.NewBackendLocal(ctx,
		local.FromPath(source),
		local.WithLimit(opts.Limit),
	)
}

// Snapshots resolves specs against the versions of be and returns the
// matching versions with their bodies, in spec order. Versions that name a
// local file are read from disk instead of the backend.
func Snapshots(ctx context.Context, be Backend, specs ...string) ([]*svutil.Version, [][]byte, error) {
	candidates, err := be.Versions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list versions of %s: %w", be, err)
	}

	versions, err := svutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("resolved %d versions from %s", len(versions), be)

	bodies := make([][]byte, 0, len(versions))
	for _, v := range versions {
		var body []byte
		if v.File {
			body, err = os.ReadFile(v.Location)
		} else {
			body, err = be.Snapshot(ctx, v)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read version %s: %w", v.ID, err)
		}
		bodies = append(bodies, body)
	}

	return versions, bodies, nil
}
