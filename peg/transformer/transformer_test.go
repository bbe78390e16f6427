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

package transformer

import (
	"testing"

	"github.com/lojban/camxes-go/peg/bootstrap"
	"github.com/lojban/camxes-go/peg/interp"
	"github.com/lojban/camxes-go/peg/rule"
)

func buildRules(t *testing.T, src string) map[string]*rule.Rule {
	t.Helper()
	rules, start := bootstrap.Build()
	g := interp.NewGrammar(rules, start)
	res := g.Parse(src)
	if !res.Ok() {
		t.Fatalf("bootstrap rejected %q: %v", src, res.Err)
	}
	xform := &Transformer{Source: src}
	built, err := xform.Build(res.Nodes)
	if err != nil {
		t.Fatalf("Build failed on %q: %v", src, err)
	}
	return built
}

func buildRulesExpectingError(t *testing.T, src string) error {
	t.Helper()
	rules, start := bootstrap.Build()
	g := interp.NewGrammar(rules, start)
	res := g.Parse(src)
	if !res.Ok() {
		// A bootstrap-level rejection is a valid way for an invalid grammar
		// to be rejected; the caller only cares that it was rejected somehow.
		return res.Err
	}
	xform := &Transformer{Source: src}
	_, err := xform.Build(res.Nodes)
	if err == nil {
		t.Fatalf("expected Build to reject %q", src)
	}
	return err
}

func TestBuildSingleLiteralRule(t *testing.T) {
	rules := buildRules(t, "start <- 'abc'\n")
	r, ok := rules["start"]
	if !ok {
		t.Fatalf("expected a 'start' rule")
	}
	if r.Kind != rule.Literal || r.Text != "abc" {
		t.Errorf("got %v, want Literal(abc)", r)
	}
}

func TestBuildSequence(t *testing.T) {
	rules := buildRules(t, "start <- 'a' 'b'\n")
	r := rules["start"]
	if r.Kind != rule.Sequence || len(r.Subs) != 2 {
		t.Fatalf("got %v, want a 2-element Sequence", r)
	}
}

func TestBuildChoice(t *testing.T) {
	rules := buildRules(t, "start <- 'a' / 'b'\n")
	r := rules["start"]
	if r.Kind != rule.Choice || len(r.Subs) != 2 {
		t.Fatalf("got %v, want a 2-element Choice", r)
	}
}

func TestBuildSuffixes(t *testing.T) {
	rules := buildRules(t, "start <- 'a'* 'b'+ 'c'?\n")
	r := rules["start"]
	if r.Kind != rule.Sequence || len(r.Subs) != 3 {
		t.Fatalf("got %v, want a 3-element Sequence", r)
	}
	if r.Subs[0].Kind != rule.ZeroOrMore {
		t.Errorf("Subs[0].Kind = %v, want ZeroOrMore", r.Subs[0].Kind)
	}
	if r.Subs[1].Kind != rule.OneOrMore {
		t.Errorf("Subs[1].Kind = %v, want OneOrMore", r.Subs[1].Kind)
	}
	if r.Subs[2].Kind != rule.Optional {
		t.Errorf("Subs[2].Kind = %v, want Optional", r.Subs[2].Kind)
	}
}

func TestBuildPrefixes(t *testing.T) {
	rules := buildRules(t, "start <- &'a' !'b'\n")
	r := rules["start"]
	if r.Kind != rule.Sequence || len(r.Subs) != 2 {
		t.Fatalf("got %v, want a 2-element Sequence", r)
	}
	if r.Subs[0].Kind != rule.And {
		t.Errorf("Subs[0].Kind = %v, want And", r.Subs[0].Kind)
	}
	if r.Subs[1].Kind != rule.Not {
		t.Errorf("Subs[1].Kind = %v, want Not", r.Subs[1].Kind)
	}
}

func TestBuildGroupedExpression(t *testing.T) {
	rules := buildRules(t, "start <- ('a' / 'b')*\n")
	r := rules["start"]
	if r.Kind != rule.ZeroOrMore {
		t.Fatalf("got %v, want ZeroOrMore", r)
	}
	if r.Sub.Kind != rule.Choice {
		t.Errorf("Sub.Kind = %v, want Choice", r.Sub.Kind)
	}
}

func TestBuildNonTerminalReference(t *testing.T) {
	rules := buildRules(t, "start <- foo\nfoo <- 'x'\n")
	r := rules["start"]
	if r.Kind != rule.NonTerminal || r.Text != "foo" {
		t.Fatalf("got %v, want NonTerminal(foo)", r)
	}
}

func TestBuildDot(t *testing.T) {
	rules := buildRules(t, "start <- .\n")
	if rules["start"].Kind != rule.Any {
		t.Errorf("got %v, want Any", rules["start"])
	}
}

func TestBuildCharacterClassAndRange(t *testing.T) {
	rules := buildRules(t, "start <- [a-z0-9]\n")
	r := rules["start"]
	if r.Kind != rule.Choice {
		t.Fatalf("got %v, want a Choice of two Ranges", r)
	}
}

func TestBuildEscapedLiteral(t *testing.T) {
	rules := buildRules(t, `start <- 'it\'s'` + "\n")
	r := rules["start"]
	if r.Kind != rule.Literal || r.Text != "it's" {
		t.Fatalf("got %v, want Literal(it's)", r)
	}
}

func TestBuildEscapedClassMembers(t *testing.T) {
	rules := buildRules(t, `start <- [\[\]\\]` + "\n")
	r := rules["start"]
	if r.Kind != rule.Class {
		t.Fatalf("got %v, want Class", r)
	}
	want := map[string]bool{"[": true, "]": true, `\`: true}
	if len(r.Symbols) != len(want) {
		t.Fatalf("Symbols = %v, want 3 escaped members", r.Symbols)
	}
	for _, s := range r.Symbols {
		if !want[s] {
			t.Errorf("unexpected symbol %q", s)
		}
	}
}

func TestBuildUndefinedReferenceIsRejected(t *testing.T) {
	err := buildRulesExpectingError(t, "start <- foo\n")
	xerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if xerr.Kind != AmbiguousNonTerminal {
		t.Errorf("Kind = %v, want AmbiguousNonTerminal", xerr.Kind)
	}
}

func TestBuildEmptyGrammarYieldsEmptyRuleMap(t *testing.T) {
	rules := buildRules(t, "")
	if len(rules) != 0 {
		t.Errorf("expected no rules for an empty grammar, got %v", rules)
	}
}
