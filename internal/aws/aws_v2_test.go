// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want options
	}{
		{name: "none", want: options{}},
		{name: "profile", opts: []Option{WithProfile("prod")}, want: options{profile: "prod"}},
		{name: "region", opts: []Option{WithRegion("eu-west-1")}, want: options{region: "eu-west-1"}},
		{name: "attempts", opts: []Option{WithMaxAttempts(5)}, want: options{maxAttempts: 5}},
		{
			name: "later wins",
			opts: []Option{WithRegion("us-east-1"), WithRegion("eu-west-1"), WithProfile("a")},
			want: options{profile: "a", region: "eu-west-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got options
			for _, opt := range tt.opts {
				opt(&got)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadAWSConfig(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("eu-central-1"), WithMaxAttempts(2))
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
	require.NotNil(t, cfg.Retryer)
	assert.Equal(t, 2, cfg.Retryer().MaxAttempts())
}

func TestS3Options(t *testing.T) {
	var o s3v2.Options
	WithS3Endpoint("")(&o)
	assert.Nil(t, o.BaseEndpoint)

	WithS3Endpoint("http://localhost:9000")(&o)
	WithS3PathStyle(true)(&o)
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *o.BaseEndpoint)
	assert.True(t, o.UsePathStyle)
}

func TestNewS3(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	client := NewS3(cfg, WithS3PathStyle(true))
	assert.IsType(t, &s3v2.Client{}, client)
	assert.True(t, client.Options().UsePathStyle)
}
