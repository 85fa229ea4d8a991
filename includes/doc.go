// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package includes resolves circom include statements and checks
// custom templates usage across the include graph.
//
// It only checks the following forms in circom sources
//
//	include "foo.circom";
//	pragma custom_templates;
//	template custom Foo(...) { ... }
//
// Include names are resolved against the directory of the including
// file first, then against library directories in the given order.
// The first existing candidate is used. Paths are normalized lexically,
// so a candidate may be normalized before it is known to exist, and
// symlinks are not resolved.
//
// Each physical file is processed at most once, even if it is included
// from multiple files or via an include cycle.
//
// A file that defines custom templates taints every file that includes
// it, directly or transitively. Every tainted file must declare
// `pragma custom_templates;` itself. Graph.ProblematicPaths reports each
// include chain that reaches a file without the pragma.
package includes
