// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package includes is includes subcommand to check circom includes.
package includes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/luci/common/cli"

	"github.com/sigmachirality/circom-npm/build/buildconfig"
	"github.com/sigmachirality/circom-npm/includes"
	"github.com/sigmachirality/circom-npm/osfs"
)

const usage = `check circom includes

 $ circominc includes -C <dir> [-l <libdir>]... <main.circom>...
 $ circominc includes -C <dir> -req '<json request>'

resolves include statements of each <main.circom>, and reports
chains from a file defining custom templates to a file that doesn't
declare "pragma custom_templates;".

<json request> is {"source": "main.circom", "libraries": ["lib"]}.
Libraries in circominc.yaml of <dir> are used after -l flags.
`

// ErrViolation is an error when some custom templates are used
// without the pragma.
var ErrViolation = errors.New("custom templates are used without pragma")

// Cmd returns the Command for the `includes` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "includes [-C <dir>] [-l <libdir>]... <main.circom>...",
		ShortDesc: "check circom includes",
		LongDesc:  usage,
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
	reqString  string
	configFile string
	libraries  buildconfig.Libraries
	quiet      bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "project directory")
	c.Flags.StringVar(&c.reqString, "req", "", "json format of includes request")
	c.Flags.StringVar(&c.configFile, "config", buildconfig.DefaultFilename, "project config file (relative to -C)")
	c.Flags.Var(&c.libraries, "l", "library directory to resolve includes. can be repeated")
	c.Flags.BoolVar(&c.quiet, "q", false, "don't print processed files")
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
	var reqs []includes.Request
	if c.reqString != "" {
		var req includes.Request
		err := json.Unmarshal([]byte(c.reqString), &req)
		if err != nil {
			return err
		}
		reqs = append(reqs, req)
	}
	if len(reqs) == 0 && len(args) == 0 {
		return fmt.Errorf("no source: %w", flag.ErrHelp)
	}
	err := os.Chdir(c.dir)
	if err != nil {
		return err
	}
	cfg, err := buildconfig.Load(c.configFile)
	if err != nil {
		return err
	}
	libs := append(append([]string(nil), c.libraries...), cfg.Libraries...)
	for _, arg := range args {
		reqs = append(reqs, includes.Request{Source: arg})
	}
	for i := range reqs {
		reqs[i].Libraries = append(reqs[i].Libraries, libs...)
	}

	fsys := osfs.New("fs")
	s := includes.New(fsys)
	results := make([]*includes.Result, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, req := range reqs {
		eg.Go(func() error {
			log.Infof("scan %s libraries=%q", req.Source, req.Libraries)
			result, err := s.Scan(ctx, req)
			if err != nil {
				return fmt.Errorf("scan %s: %w", req.Source, err)
			}
			results[i] = result
			return nil
		})
	}
	err = eg.Wait()
	if err != nil {
		return err
	}
	log.Infof("fs %s", fsys.Stats())

	violations := 0
	for i, result := range results {
		if !c.quiet {
			fmt.Fprintf(w, "%s:\n", reqs[i].Source)
			for _, f := range result.Files {
				fmt.Fprintf(w, " %s\n", f)
			}
		}
		for _, chain := range result.Violations {
			fmt.Fprintf(w, "custom templates are used but `pragma custom_templates;` is missing: %s\n", chain)
			violations++
		}
	}
	if violations > 0 {
		return fmt.Errorf("%d chains: %w", violations, ErrViolation)
	}
	return nil
}
