// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Circominc checks circom include graphs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"github.com/sigmachirality/circom-npm/o11y/clog"
	"github.com/sigmachirality/circom-npm/subcmd/digraph"
	"github.com/sigmachirality/circom-npm/subcmd/help"
	"github.com/sigmachirality/circom-npm/subcmd/includes"
	"github.com/sigmachirality/circom-npm/subcmd/version"
)

const versionID = "v0.1.0"

var verbosity int

func init() {
	flag.IntVar(&verbosity, "v", 0, "verbose log level")
}

func main() {
	os.Exit(circomincMain(os.Args[1:]))
}

func circomincMain(args []string) int {
	err := flag.CommandLine.Parse(args)
	if err != nil {
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	logger := clog.New(log.Default())
	logger.SetVerbosity(verbosity)
	ctx = clog.NewContext(ctx, logger)

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok && logger.V(1) {
		logger.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		for _, m := range buildinfo.Deps {
			logger.Debugf("deps module: %s", moduleInfo(m))
		}
	}
	return subcommands.Run(getApplication(ctx), flag.Args())
}

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "circominc",
		Title: "Circom include checker",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			includes.Cmd(),
			digraph.Cmd(),
			help.Cmd(),
			version.Cmd("circominc " + versionID),
		},
	}
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
