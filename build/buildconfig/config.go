// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package buildconfig provides project config for circominc.
package buildconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config filename looked up in the project dir.
const DefaultFilename = "circominc.yaml"

// Config is a project config.
type Config struct {
	// Libraries are library directories to resolve includes,
	// relative to the dir of the config file unless absolute.
	Libraries []string `yaml:"libraries"`
}

// Load loads config from fname.
// If fname is the default config and doesn't exist, it returns an empty config.
func Load(fname string) (*Config, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && filepath.Base(fname) == DefaultFilename {
			log.Debugf("no config %s", fname)
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", fname, err)
	}
	var cfg Config
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", fname, err)
	}
	dir := filepath.Dir(fname)
	for i, lib := range cfg.Libraries {
		if lib == "" {
			return nil, fmt.Errorf("config %q: empty library at %d", fname, i)
		}
		if !filepath.IsAbs(lib) {
			cfg.Libraries[i] = filepath.Join(dir, lib)
		}
	}
	log.Infof("config %s: libraries=%q", fname, cfg.Libraries)
	return &cfg, nil
}

// Libraries is a flag.Value for repeated library flags.
type Libraries []string

func (l *Libraries) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set appends a library dir.
func (l *Libraries) Set(v string) error {
	if v == "" {
		return errors.New("empty library")
	}
	*l = append(*l, v)
	return nil
}
