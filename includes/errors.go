// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"fmt"
	"io/fs"
)

// NotFoundError is an error when an include name is not found in
// the directory of the including file nor in any library directory.
// It matches fs.ErrNotExist with errors.Is.
type NotFoundError struct {
	// Name is the name used in the include statement.
	Name string

	// Searched is the directories checked, in search order.
	Searched []Path
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("include not found: %s", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}
