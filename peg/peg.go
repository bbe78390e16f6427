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

// Package peg is the public entry point of the engine: Compile turns a
// grammar's source text into a CompiledGrammar, ready to Parse arbitrary
// input. It wires the three core components together — the bootstrap
// grammar (peg/bootstrap), the interpreter (peg/interp), and the
// transformer (peg/transformer) — over the shared Rule model (peg/rule).
package peg

import (
	"sort"
	"strings"
	"sync"

	log "github.com/golang/glog"

	"github.com/lojban/camxes-go/peg/bootstrap"
	"github.com/lojban/camxes-go/peg/interp"
	"github.com/lojban/camxes-go/peg/parsing"
	"github.com/lojban/camxes-go/peg/rule"
	"github.com/lojban/camxes-go/peg/transformer"
)

var (
	bootstrapOnce    sync.Once
	bootstrapGrammar *interp.Grammar
)

// bootstrapEngine returns the fixed meta-grammar used to parse user grammar
// text. It is built once, lazily, and never mutated afterwards — only its
// memoization cache changes across calls, and each Compile gets its own
// clone so repeated compilation of unrelated grammars cannot cross-pollute
// each other's cache.
func bootstrapEngine() *interp.Grammar {
	bootstrapOnce.Do(func() {
		rules, start := bootstrap.Build()
		bootstrapGrammar = interp.NewGrammar(rules, start)
		// The bootstrap must always accept the empty grammar (Spacing and
		// Definition* both match zero occurrences); a failure here means
		// this package itself is broken, not that a caller supplied bad
		// input.
		if res := bootstrapGrammar.Parse(""); res.Err != nil {
			log.Exitf("bootstrap grammar failed a sanity parse: %v", res.Err)
		}
	})
	return bootstrapGrammar
}

// ErrorDomain discriminates which half of Compile failed.
type ErrorDomain int

const (
	// ParseDomain means the bootstrap grammar rejected the grammar text.
	ParseDomain ErrorDomain = iota
	// TransformDomain means the transformer found a structural or
	// referential problem in an otherwise syntactically valid grammar.
	TransformDomain
)

// GrammarError is returned by Compile. Exactly one of ParseErr / TransformErr
// is set, matching ErrorDomain.
type GrammarError struct {
	Domain       ErrorDomain
	ParseErr     *parsing.ParseError
	TransformErr *transformer.Error
}

func (e *GrammarError) Error() string {
	switch e.Domain {
	case ParseDomain:
		return e.ParseErr.Error()
	case TransformDomain:
		return e.TransformErr.Error()
	default:
		return "unknown grammar error"
	}
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *GrammarError) Unwrap() error {
	switch e.Domain {
	case ParseDomain:
		return e.ParseErr
	case TransformDomain:
		return e.TransformErr
	default:
		return nil
	}
}

// CompiledGrammar is a compiled rule map plus a start symbol, ready to
// parse input. Parsing mutates an internal memoization cache; see Clone for
// the supported way to parse concurrently.
type CompiledGrammar struct {
	grammar *interp.Grammar
}

// Compile parses grammarText against the bootstrap meta-grammar, then lowers
// the resulting CST into a rule map rooted at startSymbol.
func Compile(startSymbol, grammarText string) (*CompiledGrammar, error) {
	grammarText = strings.TrimSpace(grammarText)
	boot := bootstrapEngine().Clone()
	result := boot.Parse(grammarText)
	if !result.Ok() {
		return nil, &GrammarError{Domain: ParseDomain, ParseErr: result.Err}
	}

	xform := &transformer.Transformer{Source: grammarText}
	rules, err := xform.Build(result.Nodes)
	if err != nil {
		te, _ := err.(*transformer.Error)
		return nil, &GrammarError{Domain: TransformDomain, TransformErr: te}
	}

	return &CompiledGrammar{grammar: interp.NewGrammar(rules, startSymbol)}, nil
}

// Parse evaluates the compiled grammar's start symbol against input.
func (g *CompiledGrammar) Parse(input string) parsing.ParseResult {
	return g.grammar.Parse(input)
}

// Clone returns a CompiledGrammar sharing the same rule map but with an
// independent, empty memoization cache — the supported way to parse
// concurrently from multiple goroutines.
func (g *CompiledGrammar) Clone() *CompiledGrammar {
	return &CompiledGrammar{grammar: g.grammar.Clone()}
}

// ResetCache clears the memoization cache, releasing the entries the last
// Parse call left behind. Each Parse call already starts from an empty cache.
func (g *CompiledGrammar) ResetCache() {
	g.grammar.ResetCache()
}

// Start returns the grammar's start non-terminal name.
func (g *CompiledGrammar) Start() string {
	return g.grammar.Start
}

// Display renders the grammar in canonical PEG syntax, rules sorted by
// name, each printed as "\t<name> <- <rule>".
func (g *CompiledGrammar) Display() string {
	names := make([]string, 0, len(g.grammar.Rules))
	for name := range g.grammar.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("\t")
		b.WriteString(name)
		b.WriteString(" <- ")
		b.WriteString(g.grammar.Rules[name].String())
		b.WriteString("\n")
	}
	return b.String()
}

// Rule looks up a single rule by name, mostly useful for tests and tooling
// that want to inspect part of a compiled grammar without the full Display
// dump.
func (g *CompiledGrammar) Rule(name string) (*rule.Rule, bool) {
	r, ok := g.grammar.Rules[name]
	return r, ok
}
