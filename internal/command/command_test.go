// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/nodediff/internal/config"
	"github.com/tfctl/nodediff/internal/differ"
	"github.com/tfctl/nodediff/internal/svutil"
)

// isolate points config lookups at an empty directory, or at cfg when given.
func isolate(t *testing.T, cfg string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("NODEDIFF_CFG_FILE", "")
	t.Setenv("NODEDIFF_CACHE", "0")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
	if cfg != "" {
		path := filepath.Join(dir, "nodediff.yaml")
		require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
		t.Setenv("NODEDIFF_CFG_FILE", path)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	argv := append([]string{"nodediff"}, args...)
	app, err := InitApp(context.Background(), argv)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = &bytes.Buffer{}
	err = app.Run(context.Background(), argv)
	return buf.String(), err
}

func runRows(t *testing.T, args ...string) []differ.Row {
	t.Helper()
	out, err := run(t, append(args, "-o", "json")...)
	require.NoError(t, err)
	var rows []differ.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

var (
	rowB      = differ.Row{Marker: "+", Depth: 0, Name: "b", Type: "nt:folder"}
	rowA      = differ.Row{Depth: 0, Name: "a"}
	rowStamp1 = differ.Row{Marker: "-", Depth: 1, Name: "stamp", Type: "numeric", Value: "10"}
	rowStamp2 = differ.Row{Marker: "+", Depth: 1, Name: "stamp", Type: "numeric", Value: "20"}
	rowX1     = differ.Row{Marker: "-", Depth: 1, Name: "x", Type: "string", Value: "1"}
	rowX2     = differ.Row{Marker: "+", Depth: 1, Name: "x", Type: "string", Value: "2"}
)

func TestDiff(t *testing.T) {
	isolate(t, "")

	tests := []struct {
		name string
		args []string
		want []differ.Row
	}{
		{
			name: "whole trees",
			want: []differ.Row{rowB, rowA, rowStamp1, rowStamp2, rowX1, rowX2},
		},
		{
			name: "node filter",
			args: []string{"--filter", "kind=node"},
			want: []differ.Row{rowB},
		},
		{
			name: "name filter keeps context",
			args: []string{"-f", "name=x"},
			want: []differ.Row{rowA, rowX1, rowX2},
		},
		{
			name: "ignored property",
			args: []string{"--ignore", "stamp"},
			want: []differ.Row{rowB, rowA, rowX1, rowX2},
		},
		{
			name: "numeric value filter",
			args: []string{"-f", "value>15"},
			want: []differ.Row{rowA, rowStamp1, rowStamp2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"diff", "testdata/base.json", "testdata/current.json"}, tt.args...)
			assert.Equal(t, tt.want, runRows(t, args...))
		})
	}
}

func TestDiffNodePaths(t *testing.T) {
	isolate(t, "")

	rows := runRows(t, "diff", "testdata/base.json::/content/a", "testdata/current.json::a")
	require.Len(t, rows, 4)
	assert.Equal(t, "stamp", rows[0].Name)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, "x", rows[3].Name)
}

func TestDiffText(t *testing.T) {
	isolate(t, "")

	out, err := run(t, "diff", "testdata/base.json", "testdata/current.json", "--summary", "--titles")
	require.NoError(t, err)
	assert.Contains(t, out, "OP")
	assert.Contains(t, out, "nt:folder")
	assert.Contains(t, out, "+1 -0 ~2")

	out, err = run(t, "diff", "testdata/base.json", "testdata/current.yaml", "--summary")
	require.NoError(t, err)
	assert.Equal(t, "no changes\n", out)
}

func TestDiffErrors(t *testing.T) {
	isolate(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "one argument", args: []string{"diff", "testdata/base.json"}},
		{name: "missing file", args: []string{"diff", "testdata/base.json", "testdata/nope.json"}},
		{name: "missing node", args: []string{"diff", "testdata/base.json", "testdata/current.json::/content/zz"}},
		{name: "bad output", args: []string{"diff", "testdata/base.json", "testdata/current.json", "-o", "xml"}},
		{name: "bad binary policy", args: []string{"diff", "testdata/base.json", "testdata/current.json", "--binary", "hash"}},
		{name: "bad format", args: []string{"diff", "testdata/base.json", "testdata/current.json", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestDiffConfig(t *testing.T) {
	isolate(t, "ignore:\n  - x\ndiff:\n  output: json\n")

	out, err := run(t, "diff", "testdata/base.json", "testdata/current.json")
	require.NoError(t, err)

	var rows []differ.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []differ.Row{rowB, rowA, rowStamp1, rowStamp2}, rows)
}

func TestInitAppBadConfig(t *testing.T) {
	isolate(t, "")
	t.Setenv("NODEDIFF_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := InitApp(context.Background(), []string{"nodediff", "diff"})
	assert.Error(t, err)
}

// writeVersions creates n rev snapshots in dir, each one hour newer than the
// last.
func writeVersions(t *testing.T, dir string, n int) {
	t.Helper()
	start := time.Now().Add(-time.Duration(n) * time.Hour)
	for i := 1; i <= n; i++ {
		body := `{"path": "/content", "properties": {"rev": ` + strconv.Itoa(i) + `}}`
		p := filepath.Join(dir, "v"+strconv.Itoa(i)+".json")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		mod := start.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
}

func revRows(from, to string) []differ.Row {
	return []differ.Row{
		{Marker: "-", Name: "rev", Type: "numeric", Value: from},
		{Marker: "+", Name: "rev", Type: "numeric", Value: to},
	}
}

func TestVersiondiff(t *testing.T) {
	isolate(t, "")
	dir := t.TempDir()
	writeVersions(t, dir, 3)

	tests := []struct {
		name string
		args []string
		want []differ.Row
	}{
		{name: "two newest", want: revRows("2", "3")},
		{name: "one version against newest", args: []string{"V~2"}, want: revRows("1", "3")},
		{name: "two serials", args: []string{"1", "2"}, want: revRows("1", "2")},
		{name: "ID prefix", args: []string{"v1", "v2"}, want: revRows("1", "2")},
		{name: "filter", args: []string{"-f", "value<0"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"versiondiff", "--source", dir}, tt.args...)
			rows := runRows(t, args...)
			if tt.want == nil {
				assert.Empty(t, rows)
				return
			}
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestVersiondiffSourceFromEnv(t *testing.T) {
	isolate(t, "")
	dir := t.TempDir()
	writeVersions(t, dir, 2)
	t.Setenv("NODEDIFF_SOURCE", dir)

	assert.Equal(t, revRows("1", "2"), runRows(t, "versiondiff"))
}

func TestVersiondiffPicker(t *testing.T) {
	isolate(t, "")
	dir := t.TempDir()
	writeVersions(t, dir, 3)

	saved := selectVersions
	t.Cleanup(func() { selectVersions = saved })

	// Picked newest first; the older one still becomes the base.
	selectVersions = func(items []*svutil.Version) []*svutil.Version {
		return []*svutil.Version{items[0], items[2]}
	}
	assert.Equal(t, revRows("1", "3"), runRows(t, "versiondiff", "--source", dir, "+"))

	selectVersions = func([]*svutil.Version) []*svutil.Version { return nil }
	_, err := run(t, "versiondiff", "--source", dir, "+")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestVersiondiffErrors(t *testing.T) {
	isolate(t, "")
	dir := t.TempDir()
	writeVersions(t, dir, 2)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no source", args: []string{"versiondiff"}},
		{name: "too many versions", args: []string{"versiondiff", "--source", dir, "1", "2", "3"}},
		{name: "out of range", args: []string{"versiondiff", "--source", dir, "V~5"}},
		{name: "missing path", args: []string{"versiondiff", "--source", dir, "--path", "/content/zz"}},
		{name: "endpoint on local source", args: []string{"versiondiff", "--source", dir, "--endpoint", "http://localhost:9000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestVersions(t *testing.T) {
	isolate(t, "")
	dir := t.TempDir()
	writeVersions(t, dir, 3)

	out, err := run(t, "versions", "--source", dir, "-o", "json", "--sort", "serial")
	require.NoError(t, err)

	var versions []svutil.Version
	require.NoError(t, json.Unmarshal([]byte(out), &versions))
	require.Len(t, versions, 3)
	assert.Equal(t, "v1.json", versions[0].ID)
	assert.Equal(t, int64(3), versions[2].Serial)

	out, err = run(t, "versions", "--source", dir, "--limit", "2", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &versions))
	assert.Len(t, versions, 2)
	assert.Equal(t, "v3.json", versions[0].ID)

	out, err = run(t, "versions", "--source", dir, "--titles")
	require.NoError(t, err)
	assert.Contains(t, out, "SERIAL")
	assert.Contains(t, out, "v2.json")
}

func TestCompletion(t *testing.T) {
	isolate(t, "")

	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _nodediff nodediff")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef nodediff")
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		validator FlagValidatorType
		wantErr   bool
	}{
		{"text output", "text", OutputValidator, false},
		{"yaml output", "yaml", OutputValidator, false},
		{"raw output", "raw", OutputValidator, true},
		{"opaque binary", "opaque", BinaryValidator, false},
		{"ignore binary", "IGNORE", BinaryValidator, false},
		{"unknown binary", "hash", BinaryValidator, true},
		{"empty format", "", FormatValidator, false},
		{"hcl format", "hcl", FormatValidator, false},
		{"xml format", "xml", FormatValidator, true},
		{"zero", 0, NonNegativeValidator, false},
		{"negative", -1, NonNegativeValidator, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetMeta(t *testing.T) {
	assert.Empty(t, GetMeta(nil).Args)

	app, err := InitApp(context.Background(), []string{"nodediff", "versions"})
	require.NoError(t, err)
	for _, cmd := range app.Commands {
		assert.Equal(t, []string{"nodediff", "versions"}, GetMeta(cmd).Args, cmd.Name)
	}
}
