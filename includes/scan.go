// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sigmachirality/circom-npm/o11y/clog"
)

// FS is a filesystem to scan circom files.
type FS interface {
	FileSystem

	// ReadFile reads the named file.
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Scanner scans circom include graph.
type Scanner struct {
	fs FS
}

// New creates new Scanner.
func New(fsys FS) *Scanner {
	return &Scanner{fs: fsys}
}

// Request is a request to scan includes.
type Request struct {
	// Source is the main circom file.
	Source string `json:"source"`

	// Libraries are library directories (search paths),
	// checked after the dir of the including file, in order.
	Libraries []string `json:"libraries,omitempty"`
}

// Result is a result of include scanning.
type Result struct {
	// Files are files processed, in processing order.
	Files []Path

	// Includes maps a file to resolved paths of its include
	// statements, in statement order.
	Includes map[Path][]Path

	// Graph has an edge from each included file to the file
	// that includes it.
	Graph *Graph

	// Violations are chains from a file defining custom templates,
	// through files including it, to a file without
	// `pragma custom_templates;`.
	Violations []Chain
}

// Scan scans circom files reachable from req.Source by include statements.
// It returns error if an include is not found.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Result, error) {
	if req.Source == "" {
		return nil, errors.New("no source in request")
	}
	ctx = clog.NewSpan(ctx, uuid.New().String(), "", map[string]string{
		"source": req.Source,
	})
	started := time.Now()

	wl := NewWorklist(req.Source, s.fs)
	g := NewGraph()
	includes := make(map[Path][]Path)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fname, ok := wl.Next(ctx)
		if !ok {
			break
		}
		buf, err := s.fs.ReadFile(ctx, string(fname))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fname, err)
		}
		d, err := CircomScan(ctx, string(fname), buf)
		if err != nil {
			return nil, err
		}
		g.AddNode(fname, d.Pragma, d.UsesCustomGates)
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "scan %s -> includes:%q pragma:%t custom:%t", fname, d.Includes, d.Pragma, d.UsesCustomGates)
		}
		for _, name := range d.Includes {
			incpath, err := wl.Resolve(ctx, name, req.Libraries)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fname, err)
			}
			// edge from the included file to fname, which is
			// the node added last.
			g.AddEdge(string(incpath))
			includes[fname] = append(includes[fname], incpath)
		}
	}
	result := &Result{
		Files:      wl.Visited(),
		Includes:   includes,
		Graph:      g,
		Violations: g.ProblematicPaths(),
	}
	if clog.V(ctx, 1) {
		clog.Infof(ctx, "scanned %d files (%d paths) violations:%d in %s", len(result.Files), wl.intern.Len(), len(result.Violations), time.Since(started))
	}
	return result, nil
}
