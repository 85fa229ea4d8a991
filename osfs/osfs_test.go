// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package osfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sigmachirality/circom-npm/o11y/iometrics"
)

func TestIsFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "main.circom")
	err := os.WriteFile(fname, []byte("pragma circom 2.0.0;\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.Mkdir(filepath.Join(dir, "lib.circom"), 0755)
	if err != nil {
		t.Fatal(err)
	}

	fsys := New("test")
	for _, tc := range []struct {
		name string
		want bool
	}{
		{name: fname, want: true},
		{name: filepath.Join(dir, "lib.circom"), want: false},
		{name: filepath.Join(dir, "missing.circom"), want: false},
	} {
		if got := fsys.IsFile(ctx, tc.name); got != tc.want {
			t.Errorf("IsFile(ctx, %q)=%t; want %t", tc.name, got, tc.want)
		}
	}

	buf, err := fsys.ReadFile(ctx, fname)
	if err != nil {
		t.Errorf("ReadFile(ctx, %q)=_, %v; want nil err", fname, err)
	}
	_, err = fsys.ReadFile(ctx, filepath.Join(dir, "missing.circom"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(ctx, missing)=_, %v; want %v", err, fs.ErrNotExist)
	}

	want := iometrics.Stats{
		Probes:      3,
		ProbeMisses: 2,
		ROps:        2,
		RBytes:      int64(len(buf)),
		RErrs:       1,
	}
	if diff := cmp.Diff(want, fsys.Stats()); diff != "" {
		t.Errorf("Stats() diff -want +got:\n%s", diff)
	}
}
