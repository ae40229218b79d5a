// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level log.Level
		trace bool
	}{
		{"", log.ErrorLevel, false},
		{"trace", log.DebugLevel, true},
		{"DEBUG", log.DebugLevel, false},
		{"info", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"fatal", log.FatalLevel, false},
		{"loud", log.ErrorLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, trace := ParseLevel(tt.in)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.trace, trace)
		})
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: &CustomHandler{Writer: &buf}, Level: log.DebugLevel}

	logger.Warn("subtree unreadable")
	logger.Debug("TRACE: stack depth 3")
	logger.WithError(errors.New("boom")).Error("load failed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 3)
	assert.Regexp(t, `^\d{4}-\d\d-\d\d \d\d:\d\d:\d\d W subtree unreadable$`, string(lines[0]))
	assert.Contains(t, string(lines[1]), " T stack depth 3")
	assert.Contains(t, string(lines[2]), " E load failed: boom")
}
