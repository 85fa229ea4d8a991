// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package digraph is digraph subcommand to show include graph of circom files
// for https://pkg.go.dev/golang.org/x/tools/cmd/digraph
package digraph

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"github.com/sigmachirality/circom-npm/build/buildconfig"
	"github.com/sigmachirality/circom-npm/includes"
	"github.com/sigmachirality/circom-npm/osfs"
)

const usage = `show digraph

 $ circominc digraph -C <dir> [-l <libdir>]... [-taint] <main.circom>

prints directed graph of includes for <main.circom>.
Each line contains one or more files, and the first file includes
the rest of the files on the same line.
With -taint, the first file is included by the rest of the files,
as used to check custom templates.

This output can be passed to digraph command, installed by
 $ go install golang.org/x/tools/cmd/digraph@latest

See https://pkg.go.dev/golang.org/x/tools/cmd/digraph
for digraph command.
`

// Cmd returns the Command for the `digraph` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "digraph [-C <dir>] [-l <libdir>]... <main.circom>",
		ShortDesc: "show digraph",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dir        string
	configFile string
	libraries  buildconfig.Libraries
	taint      bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "project directory")
	c.Flags.StringVar(&c.configFile, "config", buildconfig.DefaultFilename, "project config file (relative to -C)")
	c.Flags.Var(&c.libraries, "l", "library directory to resolve includes. can be repeated")
	c.Flags.BoolVar(&c.taint, "taint", false, "print edges of custom templates check")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, a.GetOut(), args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("want one source, got %q: %w", args, flag.ErrHelp)
	}
	err := os.Chdir(c.dir)
	if err != nil {
		return err
	}
	cfg, err := buildconfig.Load(c.configFile)
	if err != nil {
		return err
	}
	s := includes.New(osfs.New("fs"))
	result, err := s.Scan(ctx, includes.Request{
		Source:    args[0],
		Libraries: append(append([]string(nil), c.libraries...), cfg.Libraries...),
	})
	if err != nil {
		return err
	}
	for _, f := range result.Files {
		var succs []string
		if c.taint {
			for _, n := range result.Graph.Successors(f) {
				succs = append(succs, n.Path.String())
			}
		} else {
			for _, inc := range result.Includes[f] {
				succs = append(succs, inc.String())
			}
		}
		if len(succs) == 0 {
			fmt.Fprintf(w, "%s\n", f)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", f, strings.Join(succs, " "))
	}
	return nil
}
