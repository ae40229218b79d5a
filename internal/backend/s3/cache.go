// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"github.com/tfctl/nodediff/internal/cacheutil"
	"github.com/tfctl/nodediff/internal/config"
)

// cacheDirs organizes entries by bucket and then key. The version ID is
// hashed into the filename.
func cacheDirs(be *BackendS3) []string {
	return []string{"s3", be.Bucket, be.Key}
}

// CacheReader reads the cached body of versionID. The second return value is
// false when the cache is disabled or has no entry.
func CacheReader(be *BackendS3, versionID string) (*cacheutil.Entry, bool) {
	return cacheutil.Read(cacheDirs(be), versionID)
}

// CacheWriter stores the body of versionID.
func CacheWriter(be *BackendS3, versionID string, data []byte) error {
	return cacheutil.Write(cacheDirs(be), versionID, data)
}

// PurgeCache drops entries older than the cache.clean config value, in hours.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}
