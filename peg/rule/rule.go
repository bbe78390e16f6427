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

// Package rule holds the compiled, immutable representation of a PEG
// expression. A grammar is a map from non-terminal name to *Rule; the
// interpreter (package peg/interp) walks this graph against an input
// string.
package rule

import "sort"

// Kind discriminates the variant a Rule value holds. Go has no tagged union
// built in, so Rule follows the one-struct-many-optional-fields shape used
// throughout this codebase's generator package for its own Term/RHS types.
type Kind int

const (
	Empty Kind = iota
	Any
	Literal
	Range
	Class
	NonTerminal
	Group
	ZeroOrMore
	OneOrMore
	Optional
	And
	Not
	Choice
	Sequence
)

// Rule is the only compiled form of a grammar expression. Child references
// are immutable after construction and may be shared by multiple parents
// (e.g. the bootstrap's Spacing rule is referenced from a dozen places) —
// callers should treat every *Rule as read-only once built.
type Rule struct {
	Kind Kind

	// Text holds the Literal pattern or the NonTerminal's referenced name.
	Text string

	// Low, High hold the Range bounds, each a single character.
	Low, High string

	// Symbols holds the Class member set. Stored as a sorted slice rather
	// than a map so that matching order is deterministic (see the
	// "class set ordering" note this package's tests rely on); members are
	// expected to be mutually prefix-free.
	Symbols []string

	// Sub holds the child of Group, ZeroOrMore, OneOrMore, Optional, And,
	// and Not.
	Sub *Rule

	// Subs holds the children of Choice and Sequence, in order.
	Subs []*Rule
}

// NewEmpty returns the rule that always matches and consumes nothing.
func NewEmpty() *Rule { return &Rule{Kind: Empty} }

// NewAny returns the rule that matches one character if any remains.
func NewAny() *Rule { return &Rule{Kind: Any} }

// NewLiteral returns the rule that matches the exact string s.
func NewLiteral(s string) *Rule { return &Rule{Kind: Literal, Text: s} }

// NewRange returns the rule that matches one character c with lo <= c <= hi.
// lo and hi must each be exactly one character.
func NewRange(lo, hi string) *Rule { return &Rule{Kind: Range, Low: lo, High: hi} }

// NewClass returns the rule that matches one character equal to any member
// of symbols. The rule stores a sorted copy of symbols, for deterministic
// matching order; the caller's slice is left unchanged.
func NewClass(symbols []string) *Rule {
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	return &Rule{Kind: Class, Symbols: sorted}
}

// NewNonTerminal returns the rule that dereferences name in the rule map.
func NewNonTerminal(name string) *Rule { return &Rule{Kind: NonTerminal, Text: name} }

// NewGroup returns a transparent wrapper around r.
func NewGroup(r *Rule) *Rule { return &Rule{Kind: Group, Sub: r} }

// NewZeroOrMore returns the greedy zero-or-more repetition of r.
func NewZeroOrMore(r *Rule) *Rule { return &Rule{Kind: ZeroOrMore, Sub: r} }

// NewOneOrMore returns the greedy one-or-more repetition of r.
func NewOneOrMore(r *Rule) *Rule { return &Rule{Kind: OneOrMore, Sub: r} }

// NewOptional returns the optional application of r.
func NewOptional(r *Rule) *Rule { return &Rule{Kind: Optional, Sub: r} }

// NewAnd returns the positive lookahead over r.
func NewAnd(r *Rule) *Rule { return &Rule{Kind: And, Sub: r} }

// NewNot returns the negative lookahead over r.
func NewNot(r *Rule) *Rule { return &Rule{Kind: Not, Sub: r} }

// NewChoice returns the ordered alternation over rules. A single-element
// slice collapses to that element, matching the bootstrap builder's
// behavior so displayed grammars stay minimal.
func NewChoice(rules []*Rule) *Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return &Rule{Kind: Choice, Subs: append([]*Rule(nil), rules...)}
}

// NewSequence returns the ordered sequence over rules, with the same
// single-element collapsing behavior as NewChoice.
func NewSequence(rules []*Rule) *Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return &Rule{Kind: Sequence, Subs: append([]*Rule(nil), rules...)}
}

// CreateCharacterClass is a convenience constructor mirroring the bootstrap
// grammar's use of small literal character sets (e.g. the escapable
// characters after a backslash).
func CreateCharacterClass(chars []string) *Rule {
	return NewClass(chars)
}
