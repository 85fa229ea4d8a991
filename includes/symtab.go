// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

// symtab interns paths, so the same file resolved from different
// include statements shares one string.
type symtab struct {
	m map[Path]Path
}

func (s *symtab) Intern(p Path) Path {
	if v, ok := s.m[p]; ok {
		return v
	}
	if s.m == nil {
		s.m = make(map[Path]Path)
	}
	// Make a copy of the string.
	// In case p is substring of large string, if it is used as
	// intern value, the large string would be kept in memory.
	p = Path([]byte(p))
	s.m[p] = p
	return p
}

func (s *symtab) Len() int {
	return len(s.m)
}
