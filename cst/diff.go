// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cst

import (
	"fmt"

	"github.com/lojban/camxes-go/peg/parsing"
)

// Diff recursively compares two CST nodes and reports every structural
// mismatch found: label, span, and children (pairwise, up to the shorter
// child count — a count mismatch is reported once and does not stop the
// pairwise comparison that is still possible).
func Diff(got, want parsing.ParseNode) (diff []string) {
	if got.NonTerminal != want.NonTerminal {
		diff = append(diff, fmt.Sprintf("Expected name %q, got %q", want.NonTerminal, got.NonTerminal))
	}
	if got.Span != want.Span {
		diff = append(diff, fmt.Sprintf("Expected span [%d,%d), got [%d,%d)",
			want.Span.Begin, want.Span.End, got.Span.Begin, got.Span.End))
	}
	if len(got.Children) != len(want.Children) {
		diff = append(diff, fmt.Sprintf("Expected %d children, got %d", len(want.Children), len(got.Children)))
	}
	n := len(got.Children)
	if len(want.Children) < n {
		n = len(want.Children)
	}
	for i := 0; i < n; i++ {
		diff = append(diff, Diff(got.Children[i], want.Children[i])...)
	}
	return diff
}

// DiffRoots compares two CST root lists (as returned in ParseResult.Nodes),
// pairwise up to the shorter list's length, reporting a length mismatch
// first.
func DiffRoots(got, want []parsing.ParseNode) (diff []string) {
	if len(got) != len(want) {
		diff = append(diff, fmt.Sprintf("Expected %d root nodes, got %d", len(want), len(got)))
	}
	n := len(got)
	if len(want) < n {
		n = len(want)
	}
	for i := 0; i < n; i++ {
		diff = append(diff, Diff(got[i], want[i])...)
	}
	return diff
}
