// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"context"
	"fmt"
	"time"

	"github.com/sigmachirality/circom-npm/o11y/clog"
)

// Directives are facts of a circom file needed for include checks.
type Directives struct {
	// Includes are names of include statements, in file order.
	Includes []string

	// Pragma is true if the file has `pragma custom_templates;`.
	Pragma bool

	// UsesCustomGates is true if the file defines `template custom`.
	UsesCustomGates bool
}

type circomToken struct {
	text string
	line int

	// str is true if text is the content of a string literal.
	str bool
}

// CircomScan scans include statements, custom templates pragma and
// custom template definitions in buf.
// It doesn't parse circom, so statements are recognized by
// token sequence only.
func CircomScan(ctx context.Context, fname string, buf []byte) (Directives, error) {
	started := time.Now()
	var d Directives
	toks, err := circomTokenize(fname, buf)
	if err != nil {
		return d, err
	}
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.str || i+1 >= len(toks) {
			continue
		}
		next := toks[i+1]
		switch tok.text {
		case "include":
			if !next.str {
				if clog.V(ctx, 2) {
					clog.Infof(ctx, "%s:%d: skip include %q", fname, tok.line, next.text)
				}
				continue
			}
			d.Includes = append(d.Includes, next.text)
			i++
		case "pragma":
			if !next.str && next.text == "custom_templates" {
				d.Pragma = true
				i++
			}
		case "template":
			if !next.str && next.text == "custom" {
				d.UsesCustomGates = true
				i++
			}
		}
	}
	if dur := time.Since(started); dur > time.Second {
		clog.Infof(ctx, "slow circomScan %s %s", fname, dur)
	}
	return d, nil
}

// circomTokenize splits buf into identifier-like words and string
// literals. Comments, whitespace and punctuation are dropped.
func circomTokenize(fname string, buf []byte) ([]circomToken, error) {
	var toks []circomToken
	line := 1
	for i := 0; i < len(buf); {
		c := buf[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == '/' && i+1 < len(buf) && buf[i+1] == '/':
			for i < len(buf) && buf[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(buf) && buf[i+1] == '*':
			i += 2
			for i < len(buf) && !(buf[i] == '*' && i+1 < len(buf) && buf[i+1] == '/') {
				if buf[i] == '\n' {
					line++
				}
				i++
			}
			// skip "*/", if any.
			i += 2
		case c == '"':
			start := line
			j := i + 1
			for j < len(buf) && buf[j] != '"' && buf[j] != '\n' {
				if buf[j] == '\\' && j+1 < len(buf) && buf[j+1] != '\n' {
					j++
				}
				j++
			}
			if j >= len(buf) || buf[j] != '"' {
				return nil, fmt.Errorf("%s:%d: unterminated string literal", fname, start)
			}
			toks = append(toks, circomToken{text: string(buf[i+1 : j]), str: true, line: start})
			i = j + 1
		case isWordByte(c):
			j := i
			for j < len(buf) && isWordByte(buf[j]) {
				j++
			}
			toks = append(toks, circomToken{text: string(buf[i:j]), line: line})
			i = j
		default:
			i++
		}
	}
	return toks, nil
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '$':
		return true
	}
	return false
}
