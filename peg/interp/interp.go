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

// Package interp is the backtracking recursive-descent evaluator. It walks
// a peg/rule.Rule graph against an input string, producing a concrete
// syntax tree or an error chain, with packrat memoization keyed by
// (non-terminal name, start position).
package interp

import (
	"strings"
	"sync"
	"unicode/utf8"

	log "github.com/golang/glog"

	"github.com/lojban/camxes-go/peg/parsing"
	"github.com/lojban/camxes-go/peg/rule"
)

// memoKey is the packrat cache key: a non-terminal name and the position at
// which it was attempted.
type memoKey struct {
	name string
	pos  int
}

// Grammar is a compiled rule map plus the memoization cache the interpreter
// mutates while parsing. A Grammar's rule map is read-only after
// construction and may be shared; its cache is not, so concurrent parsing
// requires independent clones (see Clone).
type Grammar struct {
	Rules map[string]*rule.Rule
	Start string

	mu   sync.Mutex
	memo map[memoKey]parsing.ParseResult
}

// NewGrammar wraps a rule map and start symbol into a Grammar ready to
// parse. The memoization cache starts empty.
func NewGrammar(rules map[string]*rule.Rule, start string) *Grammar {
	return &Grammar{Rules: rules, Start: start, memo: make(map[memoKey]parsing.ParseResult)}
}

// Clone returns a Grammar sharing the same read-only rule map but with a
// fresh, empty memoization cache — the supported way to parse the same
// grammar concurrently from multiple goroutines (§5 of the design).
func (g *Grammar) Clone() *Grammar {
	return NewGrammar(g.Rules, g.Start)
}

// Parse evaluates the grammar's start non-terminal against input starting
// at offset 0. Each call starts from an empty memoization cache, so results
// cached for a prior input never leak into this one.
func (g *Grammar) Parse(input string) parsing.ParseResult {
	g.ResetCache()
	return eval(g, rule.NewNonTerminal(g.Start), input, 0, 0)
}

// ResetCache clears the memoization cache, releasing the entries the last
// Parse call left behind. Parse itself already starts from an empty cache.
func (g *Grammar) ResetCache() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.memo = make(map[memoKey]parsing.ParseResult)
}

func (g *Grammar) lookupMemo(key memoKey) (parsing.ParseResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, ok := g.memo[key]
	return res, ok
}

func (g *Grammar) storeMemo(key memoKey, res parsing.ParseResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.memo[key] = res
}

// eval is the exhaustive per-variant dispatch. depth is used only for debug
// tracing (tree-drawing prefix), matching the recursion-depth markers used
// across this codebase's other hand-rolled parsers.
func eval(g *Grammar, r *rule.Rule, input string, position int, depth int) parsing.ParseResult {
	switch r.Kind {
	case rule.Empty:
		return parsing.Succeed(position, nil)

	case rule.Any:
		if position < len(input) {
			_, w := utf8.DecodeRuneInString(input[position:])
			end := position + w
			return parsing.Succeed(end, []parsing.ParseNode{parsing.Terminal(parsing.Span{Begin: position, End: end})})
		}
		return parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.UnexpectedEndOfInput,
		})

	case rule.Literal:
		if strings.HasPrefix(input[position:], r.Text) {
			end := position + len(r.Text)
			return parsing.Succeed(end, []parsing.ParseNode{parsing.Terminal(parsing.Span{Begin: position, End: end})})
		}
		return parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.ExpressionDoesNotMatch,
		})

	case rule.Range:
		if position >= len(input) {
			return parsing.Fail(position, &parsing.ParseError{
				Position: position, Expression: r.String(), Kind: parsing.ExpressionDoesNotMatch,
			})
		}
		c, w := utf8.DecodeRuneInString(input[position:])
		lo, _ := utf8.DecodeRuneInString(r.Low)
		hi, _ := utf8.DecodeRuneInString(r.High)
		if lo <= c && c <= hi {
			end := position + w
			return parsing.Succeed(end, []parsing.ParseNode{parsing.Terminal(parsing.Span{Begin: position, End: end})})
		}
		return parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.ExpressionDoesNotMatch,
		})

	case rule.Class:
		for _, symbol := range r.Symbols {
			if strings.HasPrefix(input[position:], symbol) {
				end := position + len(symbol)
				return parsing.Succeed(end, []parsing.ParseNode{parsing.Terminal(parsing.Span{Begin: position, End: end})})
			}
		}
		return parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.ExpressionDoesNotMatch,
		})

	case rule.NonTerminal:
		return evalNonTerminal(g, r, input, position, depth)

	case rule.Group:
		return eval(g, r.Sub, input, position, depth)

	case rule.Choice:
		for _, sub := range r.Subs {
			res := eval(g, sub, input, position, depth)
			if res.Ok() {
				return res
			}
		}
		return parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.ExpressionDoesNotMatch,
		})

	case rule.Sequence:
		pos := position
		var captures []parsing.ParseNode
		for _, sub := range r.Subs {
			res := eval(g, sub, input, pos, depth)
			if !res.Ok() {
				return parsing.Fail(position, res.Err)
			}
			pos = res.Position
			captures = append(captures, res.Nodes...)
		}
		return parsing.Succeed(pos, captures)

	case rule.ZeroOrMore:
		pos := position
		var captures []parsing.ParseNode
		for {
			res := eval(g, r.Sub, input, pos, depth)
			if !res.Ok() {
				break
			}
			pos = res.Position
			captures = append(captures, res.Nodes...)
		}
		return parsing.Succeed(pos, captures)

	case rule.OneOrMore:
		// Defined as Sequence(Group(r), ZeroOrMore(r)); equivalent behavior
		// is sufficient per the design, so we build the desugared rule
		// rather than duplicating the loop.
		desugared := rule.NewSequence([]*rule.Rule{rule.NewGroup(r.Sub), rule.NewZeroOrMore(r.Sub)})
		return eval(g, desugared, input, position, depth)

	case rule.Optional:
		res := eval(g, r.Sub, input, position, depth)
		if res.Ok() {
			return parsing.Succeed(res.Position, res.Nodes)
		}
		return parsing.Succeed(position, nil)

	case rule.And:
		res := eval(g, r.Sub, input, position, depth)
		if res.Ok() {
			return parsing.Succeed(position, nil)
		}
		return parsing.Fail(position, res.Err)

	case rule.Not:
		res := eval(g, r.Sub, input, position, depth)
		if res.Ok() {
			return parsing.Fail(position, &parsing.ParseError{
				Position: position, Expression: r.String(), Kind: parsing.NotDidMatch, Matched: res.Nodes,
			})
		}
		return parsing.Succeed(position, nil)

	default:
		log.Fatalf("interp: unknown rule kind %v", r.Kind)
		panic("unreachable")
	}
}

func evalNonTerminal(g *Grammar, r *rule.Rule, input string, position int, depth int) parsing.ParseResult {
	name := r.Text
	key := memoKey{name: name, pos: position}
	prefix := strings.Repeat("│", depth)

	if cached, ok := g.lookupMemo(key); ok {
		if log.V(2) {
			log.Infof("%scache hit %s @ %d -> %d", prefix, name, position, cached.Position)
		}
		return cached
	}

	if log.V(1) {
		log.Infof("%sparsing %s @ %d", prefix, name, position)
	}

	referenced, ok := g.Rules[name]
	if !ok {
		res := parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.NonTerminalDoesNotExist, Name: name,
		})
		g.storeMemo(key, res)
		return res
	}

	inner := eval(g, referenced, input, position, depth+1)
	var result parsing.ParseResult
	if inner.Ok() {
		wrapper := parsing.NewNonTerminal(name, parsing.Span{Begin: position, End: inner.Position}, inner.Nodes)
		result = parsing.Succeed(inner.Position, []parsing.ParseNode{wrapper})
	} else {
		result = parsing.Fail(position, &parsing.ParseError{
			Position: position, Expression: r.String(), Kind: parsing.NonTerminalDoesNotMatch, Cause: inner.Err,
		})
	}

	if log.V(2) {
		status := "ok"
		if !result.Ok() {
			status = "err"
		}
		log.Infof("%s└%s %s @ %d -> %d", prefix, status, name, position, result.Position)
	}

	g.storeMemo(key, result)
	return result
}
