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

package bootstrap

import (
	"testing"

	"github.com/lojban/camxes-go/peg/interp"
)

func TestBuildReturnsTextStartSymbol(t *testing.T) {
	rules, start := Build()
	if start != Text {
		t.Errorf("start = %q, want %q", start, Text)
	}
	if _, ok := rules[Text]; !ok {
		t.Errorf("rule map is missing the %q entry", Text)
	}
}

func TestBootstrapParsesEmptyGrammar(t *testing.T) {
	rules, start := Build()
	g := interp.NewGrammar(rules, start)
	res := g.Parse("")
	if !res.Ok() {
		t.Fatalf("expected the empty grammar text to parse successfully, got %v", res.Err)
	}
}

func TestBootstrapParsesSimpleGrammar(t *testing.T) {
	rules, start := Build()
	g := interp.NewGrammar(rules, start)
	res := g.Parse("start <- 'a' 'b'\n")
	if !res.Ok() {
		t.Fatalf("expected a simple grammar to parse, got %v", res.Err)
	}
	if res.Position != len("start <- 'a' 'b'\n") {
		t.Errorf("Position = %d, want to consume the whole input", res.Position)
	}
}

func TestBootstrapRejectsUnterminatedLiteral(t *testing.T) {
	rules, start := Build()
	g := interp.NewGrammar(rules, start)
	res := g.Parse("start <- 'a")
	if res.Ok() {
		t.Fatalf("expected an unterminated literal to fail to parse fully")
	}
}

func TestBuildDefinesAllMetaRuleNames(t *testing.T) {
	rules, _ := Build()
	names := []string{
		Text, EndOfFile, Spacing, LeftArrow, Slash, And, Not, Question, Star, Plus,
		Open, Close, Dot, Char, RangeRule, ClassMember, Class, Literal, Identifier,
		Expression, Primary, Suffix, Prefix, SequenceSym, Definition,
	}
	for _, name := range names {
		if _, ok := rules[name]; !ok {
			t.Errorf("Build() rule map is missing %q", name)
		}
	}
}
