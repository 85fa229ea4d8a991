// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCircomScan(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name  string
		input string
		want  Directives
	}{
		{
			name:  "empty",
			input: "",
			want:  Directives{},
		},
		{
			name: "includes",
			input: `pragma circom 2.1.0;
include "circomlib/circuits/poseidon.circom";
include "./lib/gates.circom";

template Main() {}
component main = Main();
`,
			want: Directives{
				Includes: []string{"circomlib/circuits/poseidon.circom", "./lib/gates.circom"},
			},
		},
		{
			name: "pragma_and_custom",
			input: `pragma circom 2.1.0;
pragma custom_templates;

template custom Gate() {
	signal input in;
}
`,
			want: Directives{
				Pragma:          true,
				UsesCustomGates: true,
			},
		},
		{
			name: "custom_without_pragma",
			input: `template custom Gate() {}
template Other() {}`,
			want: Directives{
				UsesCustomGates: true,
			},
		},
		{
			name: "comments",
			input: `// include "a.circom";
/* pragma custom_templates;
template custom Gate() {} */
include "b.circom"; // include "c.circom";
`,
			want: Directives{
				Includes: []string{"b.circom"},
			},
		},
		{
			name:  "no_spaces",
			input: `include"a.circom";include "b.circom";`,
			want: Directives{
				Includes: []string{"a.circom", "b.circom"},
			},
		},
		{
			name: "keywords_in_strings",
			input: `log("include", "x.circom");
log("pragma custom_templates");
var s = "template custom";`,
			want: Directives{},
		},
		{
			name: "identifiers",
			input: `var includes = 1;
template customGate() {}
signal pragma_x;`,
			want: Directives{},
		},
		{
			name:  "escaped_quote",
			input: `log("a\"b"); include "x.circom";`,
			want: Directives{
				Includes: []string{"x.circom"},
			},
		},
		{
			name:  "unterminated_block_comment",
			input: `include "a.circom"; /* include "b.circom";`,
			want: Directives{
				Includes: []string{"a.circom"},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CircomScan(ctx, "test.circom", []byte(tc.input))
			if err != nil {
				t.Fatalf("CircomScan(ctx, %q)=_, %v; want nil err", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CircomScan(ctx, %q) diff -want +got:\n%s", tc.input, diff)
			}
		})
	}
}

func TestCircomScanError(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "eof",
			input:   "include \"a.circom",
			wantErr: "test.circom:1: unterminated string literal",
		},
		{
			name:    "newline",
			input:   "pragma circom 2.1.0;\n\ninclude \"a.circom\n\";",
			wantErr: "test.circom:3: unterminated string literal",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CircomScan(ctx, "test.circom", []byte(tc.input))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("CircomScan(ctx, %q)=_, %v; want err %q", tc.input, err, tc.wantErr)
			}
		})
	}
}
