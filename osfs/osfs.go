// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access.
package osfs

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/sigmachirality/circom-npm/o11y/clog"
	"github.com/sigmachirality/circom-npm/o11y/iometrics"
)

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
type OSFS struct {
	*iometrics.IOMetrics
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

func logSlow(ctx context.Context, name string, dur time.Duration, err error) {
	buf := make([]byte, 4*1024)
	n := runtime.Stack(buf, false)
	clog.Warningf(ctx, "slow op %s: %s %v\n%s", name, dur, err, buf[:n])
}

// IsFile reports whether name exists and is a regular file.
// It follows symlinks.
func (fs *OSFS) IsFile(ctx context.Context, name string) bool {
	started := time.Now()
	fi, err := os.Stat(name)
	found := err == nil && fi.Mode().IsRegular()
	fs.ProbeDone(found)
	if dur := time.Since(started); dur > 1*time.Minute {
		logSlow(ctx, name, dur, err)
	}
	if clog.V(ctx, 2) {
		clog.Infof(ctx, "probe %s: %t", name, found)
	}
	return found
}

// ReadFile reads the named file and returns the contents.
func (fs *OSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	started := time.Now()
	buf, err := os.ReadFile(name)
	fs.ReadDone(len(buf), err)
	if dur := time.Since(started); dur > 1*time.Minute {
		logSlow(ctx, name, dur, err)
	}
	return buf, err
}
