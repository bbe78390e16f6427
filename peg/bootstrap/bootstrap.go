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

import "github.com/lojban/camxes-go/peg/rule"

// builder accumulates named rules while wiring the meta-grammar together,
// mirroring how a hand-written recursive-descent grammar definition reads:
// each helper below defines a handful of related rules and returns the
// NonTerminal handle(s) later helpers need.
type builder struct {
	rules map[string]*rule.Rule
}

func newBuilder() *builder {
	return &builder{rules: make(map[string]*rule.Rule)}
}

// add registers expr under name and returns a NonTerminal reference to it,
// so callers can keep composing without re-looking-up the name.
func (b *builder) add(name string, expr *rule.Rule) *rule.Rule {
	b.rules[name] = expr
	return rule.NewNonTerminal(name)
}

func (b *builder) seq(exprs ...*rule.Rule) *rule.Rule    { return rule.NewSequence(exprs) }
func (b *builder) choice(exprs ...*rule.Rule) *rule.Rule { return rule.NewChoice(exprs) }

func (b *builder) buildQuotedLiteral(quote string, spacing *rule.Rule) *rule.Rule {
	return b.seq(
		rule.NewLiteral(quote),
		rule.NewZeroOrMore(b.seq(rule.NewNot(rule.NewLiteral(quote)), rule.NewNonTerminal(Char))),
		rule.NewLiteral(quote),
		spacing,
	)
}

// Build materializes the full meta-grammar and returns its rule map
// together with the start symbol name (Text).
func Build() (map[string]*rule.Rule, string) {
	b := newBuilder()
	spacing := defineOperators(b)
	defineCharacterRules(b)
	defineNonTerminalRules(b, spacing)
	defineGrammarRules(b, spacing)
	return b.rules, Text
}

func defineOperators(b *builder) *rule.Rule {
	spacing := b.add(Spacing, rule.NewZeroOrMore(b.choice(
		rule.NewLiteral(" "),
		rule.NewLiteral("\n"),
		rule.NewLiteral("\r\n"),
	)))

	operators := []struct{ name, symbol string }{
		{LeftArrow, "<-"},
		{Slash, "/"},
		{And, "&"},
		{Not, "!"},
		{Question, "?"},
		{Star, "*"},
		{Plus, "+"},
		{Open, "("},
		{Close, ")"},
		{Dot, "."},
	}
	for _, op := range operators {
		b.add(op.name, b.seq(rule.NewLiteral(op.symbol), spacing))
	}

	b.add(EndOfFile, rule.NewNot(rule.NewAny()))
	return spacing
}

func defineCharacterRules(b *builder) {
	charRule := b.choice(
		b.seq(rule.NewLiteral(`\`), rule.CreateCharacterClass([]string{"n", "r", "t", "'", `"`, "[", "]", `\`})),
		b.seq(rule.NewLiteral(`\`), rule.NewOneOrMore(rule.NewRange("0", "9")), rule.NewLiteral(";")),
		b.seq(rule.NewNot(rule.NewLiteral(`\`)), rule.NewAny()),
	)
	b.add(Char, charRule)

	rangeRule := b.add(RangeRule, b.seq(
		rule.NewNonTerminal(Char), rule.NewLiteral("-"), rule.NewNonTerminal(Char),
	))

	b.add(ClassMember, b.choice(rangeRule, rule.NewNonTerminal(Char)))
}

func defineNonTerminalRules(b *builder, spacing *rule.Rule) {
	identifier := defineIdentifierRule(b, spacing)
	literal := defineLiteralRule(b, spacing)
	class := defineClassRule(b, spacing)

	primary := b.add(Primary, b.choice(
		b.seq(identifier, rule.NewNot(rule.NewNonTerminal(LeftArrow))),
		b.seq(rule.NewNonTerminal(Open), rule.NewNonTerminal(Expression), rule.NewNonTerminal(Close)),
		literal,
		class,
		rule.NewNonTerminal(Dot),
	))

	suffix := b.add(Suffix, rule.NewOptional(b.choice(
		rule.NewNonTerminal(Question), rule.NewNonTerminal(Star), rule.NewNonTerminal(Plus),
	)))

	prefix := b.add(Prefix, rule.NewOptional(b.choice(
		rule.NewNonTerminal(And), rule.NewNonTerminal(Not),
	)))

	sequence := b.add(SequenceSym, rule.NewZeroOrMore(b.seq(prefix, primary, suffix)))

	b.add(Expression, b.seq(
		sequence,
		rule.NewZeroOrMore(b.seq(rule.NewNonTerminal(Slash), sequence)),
	))
}

func defineGrammarRules(b *builder, spacing *rule.Rule) {
	definition := b.add(Definition, b.seq(
		rule.NewNonTerminal(Identifier), rule.NewNonTerminal(LeftArrow), rule.NewNonTerminal(Expression),
	))

	b.add(Text, b.seq(
		spacing,
		rule.NewZeroOrMore(definition),
		rule.NewNonTerminal(EndOfFile),
	))
}

func defineIdentifierRule(b *builder, spacing *rule.Rule) *rule.Rule {
	return b.add(Identifier, b.seq(
		b.choice(rule.NewRange("a", "z"), rule.NewRange("A", "Z"), rule.NewLiteral("_")),
		rule.NewZeroOrMore(b.choice(
			rule.NewRange("a", "z"), rule.NewRange("A", "Z"), rule.NewLiteral("_"), rule.NewRange("0", "9"),
		)),
		spacing,
	))
}

func defineLiteralRule(b *builder, spacing *rule.Rule) *rule.Rule {
	singleQuoted := b.buildQuotedLiteral("'", spacing)
	doubleQuoted := b.buildQuotedLiteral(`"`, spacing)
	return b.add(Literal, b.choice(singleQuoted, doubleQuoted))
}

func defineClassRule(b *builder, spacing *rule.Rule) *rule.Rule {
	return b.add(Class, b.seq(
		rule.NewLiteral("["),
		rule.NewZeroOrMore(b.seq(rule.NewNot(rule.NewLiteral("]")), rule.NewNonTerminal(ClassMember))),
		rule.NewLiteral("]"),
		spacing,
	))
}
