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

// Package parsing holds the data types shared between the interpreter and
// the transformer: spans, the concrete syntax tree, and parse errors.
package parsing

import "fmt"

// Span is a half-open byte offset interval [Begin, End) over the original
// input.
type Span struct {
	Begin int
	End   int
}

// ParseNode is a node of the concrete syntax tree. Exactly one of the two
// constructors below should be used; a zero-value ParseNode is not valid.
type ParseNode struct {
	// NonTerminal is non-empty for NonTerminal nodes, empty for Terminal nodes.
	NonTerminal string
	Span        Span
	// Children is non-nil only for NonTerminal nodes.
	Children []ParseNode
}

// Terminal builds a leaf CST node produced by Any, Literal, Range, or Class.
func Terminal(span Span) ParseNode {
	return ParseNode{Span: span}
}

// NewNonTerminal builds an interior CST node produced by a successful
// NonTerminal dereference.
func NewNonTerminal(name string, span Span, children []ParseNode) ParseNode {
	return ParseNode{NonTerminal: name, Span: span, Children: children}
}

// IsTerminal reports whether n is a leaf node.
func (n ParseNode) IsTerminal() bool {
	return n.NonTerminal == ""
}

// ParseResult is the outcome of attempting to match a Rule at a position:
// a (cost, position, outcome) triple. Cost is an opaque accounting integer,
// always 1 at every constructor in this package — its accumulation
// semantics are left undefined upstream, so no caller should rely on it
// beyond presence.
type ParseResult struct {
	Cost     int
	Position int
	Nodes    []ParseNode
	Err      *ParseError
}

// Ok reports whether the attempt succeeded.
func (r ParseResult) Ok() bool {
	return r.Err == nil
}

// Succeed builds a successful ParseResult.
func Succeed(position int, nodes []ParseNode) ParseResult {
	return ParseResult{Cost: 1, Position: position, Nodes: nodes}
}

// Fail builds a failed ParseResult.
func Fail(position int, err *ParseError) ParseResult {
	return ParseResult{Cost: 1, Position: position, Err: err}
}

// ErrorKind discriminates the reason a ParseError was produced.
type ErrorKind int

const (
	// UnexpectedEndOfInput is produced by Any when no input remains.
	UnexpectedEndOfInput ErrorKind = iota
	// ExpressionDoesNotMatch is produced by Literal, Range, Class, and Choice.
	ExpressionDoesNotMatch
	// NotDidMatch is produced by Not when its inner expression matched.
	NotDidMatch
	// NonTerminalDoesNotMatch is produced when a NonTerminal's referenced
	// rule failed to match.
	NonTerminalDoesNotMatch
	// NonTerminalDoesNotExist is produced when a NonTerminal names a rule
	// absent from the rule map.
	NonTerminalDoesNotExist
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case ExpressionDoesNotMatch:
		return "ExpressionDoesNotMatch"
	case NotDidMatch:
		return "NotDidMatch"
	case NonTerminalDoesNotMatch:
		return "NonTerminalDoesNotMatch"
	case NonTerminalDoesNotExist:
		return "NonTerminalDoesNotExist"
	default:
		return "UnknownErrorKind"
	}
}

// ParseError is the failure branch of a ParseResult, forming a single-link
// failure chain via Cause.
type ParseError struct {
	Position int
	// Expression is the canonical display string of the rule that produced
	// this error, captured at construction time (display.go in peg/rule
	// renders Rule values to this form; the interpreter stores the rendered
	// string, so this package does not import peg/rule).
	Expression string
	Kind       ErrorKind
	// Matched is populated only for NotDidMatch, holding the nodes that Not's
	// inner expression produced.
	Matched []ParseNode
	// Name is populated only for NonTerminalDoesNotExist.
	Name string
	Cause *ParseError
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil ParseError>"
	}
	kind := e.kindLabel()
	base := fmt.Sprintf("Encountered %s @ %d for '%s'", kind, e.Position, e.Expression)
	if e.Cause == nil {
		return base
	}
	return fmt.Sprintf("%s\n\tCaused by: %s", base, e.Cause.Error())
}

func (e *ParseError) kindLabel() string {
	if e.Kind == NonTerminalDoesNotExist && e.Name != "" {
		return fmt.Sprintf("NonTerminalDoesNotExist(%s)", e.Name)
	}
	return e.Kind.String()
}

// Unwrap exposes the failure chain to errors.Is / errors.As.
func (e *ParseError) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}
