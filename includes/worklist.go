// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"context"

	"github.com/sigmachirality/circom-npm/o11y/clog"
)

// FileSystem checks existence of include candidates.
type FileSystem interface {
	// IsFile reports whether name is an existing regular file.
	IsFile(ctx context.Context, name string) bool
}

// Worklist is a stack of files to process for a compilation.
// Each file is taken by Next at most once, even if it is
// pushed multiple times by Resolve.
// It is not safe for concurrent use.
type Worklist struct {
	fsys FileSystem

	// dir of the file last taken by Next.
	// `include "x"` is resolved in this dir first.
	dir Path

	// visited files, in the order taken by Next.
	visited map[Path]bool
	order   []Path

	// pending files.
	stack []Path

	intern symtab

	// allocation
	dirs []Path
}

// NewWorklist creates a worklist for the compilation of root.
func NewWorklist(root string, fsys FileSystem) *Worklist {
	w := &Worklist{
		fsys:    fsys,
		visited: make(map[Path]bool),
	}
	src := w.intern.Intern(Normalize(root))
	w.dir = src.Dir()
	w.stack = append(w.stack, src)
	return w
}

// Resolve resolves include name in the dir of the file last taken,
// then in libs in order, and returns the first existing file.
// The file is pushed to the worklist unless it was already taken.
// It returns *NotFoundError if name is not found in any dir.
func (w *Worklist) Resolve(ctx context.Context, name string, libs []string) (Path, error) {
	dirs := w.dirs[:0]
	dirs = append(dirs, w.dir)
	for _, lib := range libs {
		dirs = append(dirs, Normalize(lib))
	}
	w.dirs = dirs
	if clog.V(ctx, 1) {
		clog.Infof(ctx, "find %q dirs:%q", name, dirs)
	}
	for _, dir := range dirs {
		incpath := Join(dir, name)
		if !w.fsys.IsFile(ctx, string(incpath)) {
			continue
		}
		incpath = w.intern.Intern(incpath)
		if !w.visited[incpath] {
			w.stack = append(w.stack, incpath)
		}
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "find %q -> %s visited:%t", name, incpath, w.visited[incpath])
		}
		return incpath, nil
	}
	return "", &NotFoundError{
		Name:     name,
		Searched: append([]Path(nil), dirs...),
	}
}

// Next takes the next file to process.
// It returns false when no file remains.
func (w *Worklist) Next(ctx context.Context) (Path, bool) {
	for len(w.stack) > 0 {
		fname := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.visited[fname] {
			continue
		}
		w.visited[fname] = true
		w.order = append(w.order, fname)
		w.dir = fname.Dir()
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "next %s pending:%d", fname, len(w.stack))
		}
		return fname, true
	}
	return "", false
}

// Visited returns files taken by Next, in order.
func (w *Worklist) Visited() []Path {
	return append([]Path(nil), w.order...)
}
