// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func setupFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for k, v := range files {
		fname := filepath.Join(dir, k)
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, []byte(v), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func newRun(t *testing.T, flags ...string) *run {
	t.Helper()
	c := &run{}
	c.init()
	err := c.Flags.Parse(flags)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses slash-separated paths")
	}
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, map[string]string{
		"circominc.yaml": "libraries:\n  - node_modules\n",
		"ok.circom": `pragma custom_templates;
include "circomlib/gates.circom";
`,
		"bad.circom": `include "circomlib/gates.circom";
`,
		"node_modules/circomlib/gates.circom": `pragma custom_templates;
template custom Gate() {}
`,
	})
	t.Chdir(dir)

	c := newRun(t)
	var buf bytes.Buffer
	err := c.run(ctx, &buf, []string{"ok.circom"})
	if err != nil {
		t.Errorf("run(ok.circom)=%v; want nil\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "node_modules/circomlib/gates.circom") {
		t.Errorf("run(ok.circom) output=%q; want gates.circom in files", buf.String())
	}

	c = newRun(t, "-q")
	buf.Reset()
	err = c.run(ctx, &buf, []string{"ok.circom", "bad.circom"})
	if !errors.Is(err, ErrViolation) {
		t.Errorf("run(ok.circom, bad.circom)=%v; want %v", err, ErrViolation)
	}
	want := "custom templates are used but `pragma custom_templates;` is missing: gates.circom -> bad.circom\n"
	if got := buf.String(); got != want {
		t.Errorf("run(ok.circom, bad.circom) output=%q; want %q", got, want)
	}
}

func TestRunReq(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, map[string]string{
		"main.circom": `include "x.circom";
`,
		"lib/x.circom": "",
	})
	t.Chdir(dir)

	c := newRun(t, "-q", "-req", `{"source": "main.circom"}`)
	var buf bytes.Buffer
	err := c.run(ctx, &buf, nil)
	if err == nil {
		t.Errorf("run(-req main.circom)=nil; want include not found error")
	}

	c = newRun(t, "-q", "-req", `{"source": "main.circom", "libraries": ["lib"]}`)
	err = c.run(ctx, &buf, nil)
	if err != nil {
		t.Errorf("run(-req main.circom with lib)=%v; want nil", err)
	}

	c = newRun(t, "-q", "-l", "lib", "-config", "none.yaml")
	err = c.run(ctx, &buf, []string{"main.circom"})
	if err == nil {
		t.Errorf("run(-config none.yaml)=nil; want config error")
	}
}

func TestRunNoSource(t *testing.T) {
	c := newRun(t)
	var buf bytes.Buffer
	err := c.run(context.Background(), &buf, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("run()=%v; want %v", err, flag.ErrHelp)
	}
}
