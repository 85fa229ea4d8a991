// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics manages I/O metrics.
package iometrics

import (
	"fmt"
	"sync"
)

// IOMetrics holds I/O metrics of include resolution.
type IOMetrics struct {
	name string

	mu sync.Mutex

	probes      int64
	probeMisses int64
	rOps        int64
	rBytes      int64
	rErrs       int64
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// ProbeDone counts when a file existence check is done.
// found reports whether the file exists.
func (m *IOMetrics) ProbeDone(found bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes++
	if !found {
		m.probeMisses++
	}
}

// ReadDone counts when a read operation is done.
// n is the number of bytes, and err is a read error.
func (m *IOMetrics) ReadDone(n int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rOps++
	m.rBytes += int64(n)
	if err != nil {
		m.rErrs++
	}
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds iometrics.
type Stats struct {
	// Number of file existence checks.
	Probes int64
	// Number of file existence checks for missing files.
	ProbeMisses int64

	// Number of read operations.
	ROps int64
	// Number of read bytes.
	RBytes int64
	// Number of read errors.
	RErrs int64
}

func (s Stats) String() string {
	return fmt.Sprintf("probes=%d misses=%d reads=%d bytes=%d errs=%d", s.Probes, s.ProbeMisses, s.ROps, s.RBytes, s.RErrs)
}

// Stats returns the snapshot of the iometrics.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Probes:      m.probes,
		ProbeMisses: m.probeMisses,
		ROps:        m.rOps,
		RBytes:      m.rBytes,
		RErrs:       m.rErrs,
	}
}
