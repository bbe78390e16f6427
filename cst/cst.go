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

// Package cst provides the external representations of a parse result: the
// structural JSON shape tooling consumes, a diagnostic pretty-printed form
// for humans, and a tree-diff utility for tests.
package cst

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lojban/camxes-go/peg/parsing"
)

// jsonNode is the wire shape for a single ParseNode: tag field "type" with
// values "Terminal" / "NonTerminal".
type jsonNode struct {
	Type     string     `json:"type"`
	Span     [2]int     `json:"span"`
	Name     string     `json:"name,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func toJSONNode(n parsing.ParseNode) jsonNode {
	if n.IsTerminal() {
		return jsonNode{Type: "Terminal", Span: [2]int{n.Span.Begin, n.Span.End}}
	}
	children := make([]jsonNode, len(n.Children))
	for i, c := range n.Children {
		children[i] = toJSONNode(c)
	}
	return jsonNode{Type: "NonTerminal", Span: [2]int{n.Span.Begin, n.Span.End}, Name: n.NonTerminal, Children: children}
}

// ToJSON renders a CST (a list of ParseNode roots, as ParseResult.Nodes
// holds) in the structural shape: each Terminal carries its span, each
// NonTerminal carries {name, span, children}.
func ToJSON(nodes []parsing.ParseNode) ([]byte, error) {
	out := make([]jsonNode, len(nodes))
	for i, n := range nodes {
		out[i] = toJSONNode(n)
	}
	return json.Marshal(out)
}

// jsonError is the wire shape for a ParseError. The expression field is
// intentionally omitted to keep output bounded, per the external-interface
// contract.
type jsonError struct {
	Kind     string     `json:"kind"`
	Position int        `json:"position"`
	Name     string     `json:"name,omitempty"`
	Matched  []jsonNode `json:"matched,omitempty"`
	Cause    *jsonError `json:"cause,omitempty"`
}

func toJSONError(e *parsing.ParseError) *jsonError {
	if e == nil {
		return nil
	}
	je := &jsonError{Kind: e.Kind.String(), Position: e.Position, Name: e.Name}
	if len(e.Matched) > 0 {
		je.Matched = make([]jsonNode, len(e.Matched))
		for i, n := range e.Matched {
			je.Matched[i] = toJSONNode(n)
		}
	}
	je.Cause = toJSONError(e.Cause)
	return je
}

// ErrorToJSON renders a ParseError in the "kind"-tagged shape, omitting the
// expression field.
func ErrorToJSON(err *parsing.ParseError) ([]byte, error) {
	return json.Marshal(toJSONError(err))
}

// Pretty renders a CST in a human-oriented diagnostic form: one
// s-expression per root node, indented by nesting depth.
func Pretty(nodes []parsing.ParseNode) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		writePretty(&b, n, "")
	}
	return b.String()
}

func writePretty(b *strings.Builder, n parsing.ParseNode, indent string) {
	if n.IsTerminal() {
		fmt.Fprintf(b, "(Terminal %d,%d)", n.Span.Begin, n.Span.End)
		return
	}
	fmt.Fprintf(b, "(%s %d,%d", n.NonTerminal, n.Span.Begin, n.Span.End)
	childIndent := indent + "  "
	for _, c := range n.Children {
		b.WriteByte('\n')
		b.WriteString(childIndent)
		writePretty(b, c, childIndent)
	}
	b.WriteByte(')')
}

// PrettyError renders a ParseError's full cause chain as its Error() text.
func PrettyError(err *parsing.ParseError) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
