// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/tfctl/nodediff/internal/aws"
	"github.com/tfctl/nodediff/internal/svutil"
)

// API is the part of the S3 client the backend uses.
type API interface {
	s3v2.ListObjectVersionsAPIClient
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// BackendS3 is the version history of one object in a versioned bucket.
type BackendS3 struct {
	Ctx         context.Context
	Bucket      string
	Key         string
	Region      string
	Profile     string
	Endpoint    string
	PathStyle   bool
	MaxAttempts int
	Limit       int

	client API
}

// Versions implements backend.Backend. Only versions of the exact key are
// kept, so objects that merely share the prefix are ignored. Versions older
// than the most recent delete marker belong to an earlier life of the object
// and are dropped.
func (be *BackendS3) Versions(ctx context.Context) ([]*svutil.Version, error) {
	paginator := s3v2.NewListObjectVersionsPaginator(be.client, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(be.Bucket),
		Prefix: awsv2.String(be.Key),
	})

	var allDeleteMarkers []types.DeleteMarkerEntry
	var allVersions []types.ObjectVersion
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}
		allDeleteMarkers = append(allDeleteMarkers, page.DeleteMarkers...)
		allVersions = append(allVersions, page.Versions...)
	}

	var mostRecentDelete time.Time
	for _, d := range allDeleteMarkers {
		if d.Key == nil || *d.Key != be.Key {
			continue
		}
		if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
			mostRecentDelete = *d.LastModified
		}
	}

	versions := []*svutil.Version{}
	for _, v := range allVersions {
		if v.Key == nil || *v.Key != be.Key {
			if v.Key != nil {
				log.Debugf("throwing away %s", *v.Key)
			}
			continue
		}
		if v.VersionId == nil || v.LastModified == nil {
			continue
		}
		if v.LastModified.Before(mostRecentDelete) {
			continue
		}

		versions = append(versions, &svutil.Version{
			ID:        *v.VersionId,
			Name:      path.Base(be.Key),
			CreatedAt: *v.LastModified,
			Size:      awsv2.ToInt64(v.Size),
			Location:  fmt.Sprintf("%s?versionId=%s", be, *v.VersionId),
		})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].CreatedAt.After(versions[j].CreatedAt)
	})
	svutil.Number(versions)

	if be.Limit > 0 && len(versions) > be.Limit {
		versions = versions[:be.Limit]
	}
	log.Debugf("s3 versions: %s, count=%d", be, len(versions))

	return versions, nil
}

// Snapshot implements backend.Backend. Bodies are served from the cache when
// possible since a version never changes.
func (be *BackendS3) Snapshot(ctx context.Context, v *svutil.Version) ([]byte, error) {
	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	if entry, ok := CacheReader(be, v.ID); ok {
		return entry.Data, nil
	}

	result, err := be.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket:    awsv2.String(be.Bucket),
		Key:       awsv2.String(be.Key),
		VersionId: awsv2.String(v.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if err := CacheWriter(be, v.ID, data); err != nil {
		log.WithError(err).Error("error writing to cache")
	}

	return data, nil
}

func (be *BackendS3) String() string {
	return "s3://" + be.Bucket + "/" + be.Key
}

func (be *BackendS3) Type() string {
	return "s3"
}

// BackendS3Option configures a BackendS3.
type BackendS3Option = func(ctx context.Context, be *BackendS3) error

// NewBackendS3 returns a BackendS3 built from options. Without WithClient an
// SDK client is created from the shell's AWS setup and the option overrides.
func NewBackendS3(ctx context.Context, options ...BackendS3Option) (*BackendS3, error) {
	be := &BackendS3{Ctx: ctx}

	for _, opt := range options {
		if err := opt(ctx, be); err != nil {
			return nil, err
		}
	}

	if be.Bucket == "" || be.Key == "" {
		return nil, fmt.Errorf("s3 source needs a bucket and a key")
	}

	if be.client == nil {
		cfg, err := awsx.LoadAWSConfig(ctx,
			awsx.WithProfile(be.Profile),
			awsx.WithRegion(be.Region),
			awsx.WithMaxAttempts(be.MaxAttempts),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		be.client = awsx.NewS3(cfg,
			awsx.WithS3Endpoint(be.Endpoint),
			awsx.WithS3PathStyle(be.PathStyle),
		)
	}

	return be, nil
}

// FromURL sets bucket and key from s3://bucket/key.
func FromURL(u string) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		rest, ok := strings.CutPrefix(u, "s3://")
		if !ok {
			return fmt.Errorf("not an s3 url: %s", u)
		}
		bucket, key, _ := strings.Cut(rest, "/")
		be.Bucket = bucket
		be.Key = key
		return nil
	}
}

// WithRegion overrides the region from the AWS config chain.
func WithRegion(region string) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Region = region
		return nil
	}
}

// WithProfile selects a shared config profile.
func WithProfile(profile string) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Profile = profile
		return nil
	}
}

// WithEndpoint targets an S3-compatible store.
func WithEndpoint(endpoint string, pathStyle bool) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Endpoint = endpoint
		be.PathStyle = pathStyle
		return nil
	}
}

// WithMaxAttempts caps SDK retries.
func WithMaxAttempts(n int) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.MaxAttempts = n
		return nil
	}
}

// WithLimit keeps only the newest n versions. Zero or less keeps all.
func WithLimit(n int) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Limit = n
		return nil
	}
}

// WithClient injects the S3 client.
func WithClient(client API) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.client = client
		return nil
	}
}
