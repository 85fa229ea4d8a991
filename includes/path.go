// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"path/filepath"
	"strings"
)

// Path is a lexically normalized file path.
// Two Paths are the same file iff they are the same string.
type Path string

const seps = `/` + string(filepath.Separator)

func isSep(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// Normalize normalizes p lexically.
// It drops "." and empty segments, and ".." pops the previous segment.
// Unlike filepath.Clean, ".." is dropped when there is no segment to pop,
// so it never goes above the root or the start of a relative path.
// It doesn't access the filesystem, so p may not exist.
func Normalize(p string) Path {
	vol := filepath.VolumeName(p)
	rest := p[len(vol):]
	var root string
	if rest != "" && isSep(rune(rest[0])) {
		root = string(filepath.Separator)
	}
	var segs []string
	for _, s := range strings.FieldsFunc(rest, isSep) {
		switch s {
		case ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, s)
		}
	}
	return Path(vol + root + strings.Join(segs, string(filepath.Separator)))
}

// Join joins name to dir and normalizes it.
// Absolute name replaces dir.
func Join(dir Path, name string) Path {
	if dir == "" || filepath.IsAbs(name) {
		return Normalize(name)
	}
	return Normalize(string(dir) + string(filepath.Separator) + name)
}

// Dir returns the parent directory of p.
// It returns "" for a relative path with a single segment,
// and the root itself for the root.
func (p Path) Dir() Path {
	s := string(p)
	vol := filepath.VolumeName(s)
	i := strings.LastIndexAny(s[len(vol):], seps)
	if i < 0 {
		return Path(vol)
	}
	i += len(vol)
	if i == len(vol) {
		// parent is root.
		return Path(s[:i+1])
	}
	return Path(s[:i])
}

// Base returns the last segment of p.
func (p Path) Base() string {
	s := string(p)
	i := strings.LastIndexAny(s, seps)
	if i < 0 || i == len(s)-1 {
		return s
	}
	return s[i+1:]
}

func (p Path) String() string {
	return string(p)
}
