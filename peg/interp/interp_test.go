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

package interp

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lojban/camxes-go/peg/parsing"
	"github.com/lojban/camxes-go/peg/rule"
)

func grammarOf(start string, rules map[string]*rule.Rule) *Grammar {
	return NewGrammar(rules, start)
}

func TestEvalLiteral(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewLiteral("abc")})
	res := g.Parse("abcdef")
	if !res.Ok() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Position != 3 {
		t.Errorf("Position = %d, want 3", res.Position)
	}
}

func TestEvalLiteralFailureDoesNotConsume(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewLiteral("abc")})
	res := g.Parse("xyz")
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	if res.Position != 0 {
		t.Errorf("Position = %d, want 0 (failures should not advance position)", res.Position)
	}
}

func TestEvalAnyConsumesOneRune(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewAny()})
	res := g.Parse("é")
	if !res.Ok() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Position != len("é") {
		t.Errorf("Position = %d, want %d (one decoded rune, byte width)", res.Position, len("é"))
	}
}

func TestEvalAnyAtEndOfInput(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewAny()})
	res := g.Parse("")
	if res.Ok() {
		t.Fatalf("expected failure at end of input")
	}
	if res.Err.Kind != parsing.UnexpectedEndOfInput {
		t.Errorf("Kind = %v, want UnexpectedEndOfInput", res.Err.Kind)
	}
}

func TestEvalRange(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewRange("a", "z")})
	if res := g.Parse("m"); !res.Ok() {
		t.Errorf("expected 'm' in [a-z] to match")
	}
	if res := g.Parse("9"); res.Ok() {
		t.Errorf("expected '9' outside [a-z] to fail")
	}
}

func TestEvalClassMatchesAnyMember(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewClass([]string{"a", "b", "c"})})
	res := g.Parse("c")
	if !res.Ok() {
		t.Fatalf("expected success")
	}
}

func TestEvalChoiceTriesInOrder(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{
		"start": rule.NewChoice([]*rule.Rule{rule.NewLiteral("a"), rule.NewLiteral("ab")}),
	})
	res := g.Parse("ab")
	if !res.Ok() {
		t.Fatalf("expected success")
	}
	if res.Position != 1 {
		t.Errorf("Position = %d, want 1 (first alternative 'a' should win)", res.Position)
	}
}

func TestEvalChoiceFallsThroughOnFailure(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{
		"start": rule.NewChoice([]*rule.Rule{rule.NewLiteral("x"), rule.NewLiteral("y")}),
	})
	res := g.Parse("y")
	if !res.Ok() {
		t.Fatalf("expected success via second alternative")
	}
}

func TestEvalSequenceFailsAtOriginalPosition(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{
		"start": rule.NewSequence([]*rule.Rule{rule.NewLiteral("ab"), rule.NewLiteral("Z")}),
	})
	res := g.Parse("abc")
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	if res.Position != 0 {
		t.Errorf("Position = %d, want 0 (sequence failure reports the sequence's own start)", res.Position)
	}
}

func TestEvalZeroOrMoreGreedyAndNeverFails(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewZeroOrMore(rule.NewLiteral("a"))})
	res := g.Parse("aaab")
	if !res.Ok() {
		t.Fatalf("expected success")
	}
	if res.Position != 3 {
		t.Errorf("Position = %d, want 3", res.Position)
	}

	res = g.Parse("b")
	if !res.Ok() || res.Position != 0 {
		t.Errorf("zero-match case should still succeed at position 0, got ok=%v pos=%d", res.Ok(), res.Position)
	}
}

func TestEvalOneOrMoreRequiresAtLeastOne(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewOneOrMore(rule.NewLiteral("a"))})
	if res := g.Parse("aaa"); !res.Ok() || res.Position != 3 {
		t.Errorf("expected greedy match of 3, got ok=%v pos=%d", res.Ok(), res.Position)
	}
	if res := g.Parse(""); res.Ok() {
		t.Errorf("expected failure on empty input")
	}
}

func TestEvalOptionalNeverFails(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewOptional(rule.NewLiteral("a"))})
	if res := g.Parse("a"); !res.Ok() || res.Position != 1 {
		t.Errorf("expected match, ok=%v pos=%d", res.Ok(), res.Position)
	}
	if res := g.Parse("b"); !res.Ok() || res.Position != 0 {
		t.Errorf("expected non-consuming success, ok=%v pos=%d", res.Ok(), res.Position)
	}
}

func TestEvalAndIsNonConsuming(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewAnd(rule.NewLiteral("a"))})
	res := g.Parse("a")
	if !res.Ok() {
		t.Fatalf("expected success")
	}
	if res.Position != 0 {
		t.Errorf("Position = %d, want 0 (lookahead consumes nothing)", res.Position)
	}
	if len(res.Nodes) != 0 {
		t.Errorf("expected no captured nodes from lookahead, got %d", len(res.Nodes))
	}
}

func TestEvalNotIsNonConsuming(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewNot(rule.NewLiteral("a"))})
	res := g.Parse("b")
	if !res.Ok() || res.Position != 0 {
		t.Errorf("expected non-consuming success, ok=%v pos=%d", res.Ok(), res.Position)
	}

	res = g.Parse("a")
	if res.Ok() {
		t.Errorf("expected failure since inner expression matched")
	}
	if res.Err.Kind != parsing.NotDidMatch {
		t.Errorf("Kind = %v, want NotDidMatch", res.Err.Kind)
	}
}

func TestEvalNonTerminalDoesNotExist(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{})
	res := g.Parse("anything")
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	if res.Err.Kind != parsing.NonTerminalDoesNotExist {
		t.Errorf("Kind = %v, want NonTerminalDoesNotExist", res.Err.Kind)
	}
	if res.Err.Name != "start" {
		t.Errorf("Name = %q, want %q", res.Err.Name, "start")
	}
}

func TestEvalNonTerminalWrapsChildrenAndFailureCause(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{
		"start": rule.NewNonTerminal("inner"),
		"inner": rule.NewLiteral("abc"),
	})
	res := g.Parse("abc")
	if !res.Ok() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if len(res.Nodes) != 1 || res.Nodes[0].NonTerminal != "start" {
		t.Fatalf("expected a single wrapped 'start' node, got %+v", res.Nodes)
	}

	res = g.Parse("xyz")
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	if res.Err.Kind != parsing.NonTerminalDoesNotMatch {
		t.Errorf("Kind = %v, want NonTerminalDoesNotMatch", res.Err.Kind)
	}
	if res.Err.Cause == nil {
		t.Errorf("expected a Cause chaining to the inner literal's failure")
	}
}

func TestPackratMemoizationIsIdempotent(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{
		"start": rule.NewSequence([]*rule.Rule{rule.NewNonTerminal("a"), rule.NewNonTerminal("a")}),
		"a":     rule.NewLiteral("x"),
	})
	// "a" is referenced twice at different positions (0 and 1); each position
	// gets its own cache entry, and re-parsing the whole grammar must be
	// stable (repeated calls give identical results, cache or not).
	first := g.Parse("xx")
	second := g.Parse("xx")
	if first.Ok() != second.Ok() || first.Position != second.Position {
		t.Errorf("repeated Parse calls diverged: %+v vs %+v", first, second)
	}
}

func TestCloneGetsFreshCache(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewLiteral("a")})
	g.Parse("a")
	clone := g.Clone()
	if len(clone.memo) != 0 {
		t.Errorf("expected a freshly cloned grammar to have an empty memo cache, got %d entries", len(clone.memo))
	}
	if reflect.ValueOf(clone.Rules).Pointer() != reflect.ValueOf(g.Rules).Pointer() {
		t.Errorf("expected Clone to share the same underlying rule map, got a distinct one")
	}
}

func TestEvalNonTerminalProducesExactCstShape(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{
		"start": rule.NewSequence([]*rule.Rule{rule.NewNonTerminal("inner"), rule.NewLiteral("!")}),
		"inner": rule.NewLiteral("ab"),
	})
	res := g.Parse("ab!")
	if !res.Ok() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	want := []parsing.ParseNode{
		parsing.NewNonTerminal("inner", parsing.Span{Begin: 0, End: 2}, []parsing.ParseNode{
			parsing.Terminal(parsing.Span{Begin: 0, End: 2}),
		}),
		parsing.Terminal(parsing.Span{Begin: 2, End: 3}),
	}
	if diff := cmp.Diff(want, res.Nodes); diff != "" {
		t.Errorf("CST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestResetCacheClearsMemo(t *testing.T) {
	g := grammarOf("start", map[string]*rule.Rule{"start": rule.NewLiteral("a")})
	g.Parse("a")
	if len(g.memo) == 0 {
		t.Fatalf("expected the memo cache to be populated after Parse")
	}
	g.ResetCache()
	if len(g.memo) != 0 {
		t.Errorf("expected ResetCache to empty the memo cache, got %d entries", len(g.memo))
	}
}
