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

// Package transformer lowers the CST the bootstrap grammar produces for a
// user's grammar text into a validated {name -> Rule} map. It is the only
// place whole-grammar semantic checking happens (undefined non-terminal
// references).
package transformer

import (
	"sort"
	"strings"

	"github.com/lojban/camxes-go/peg/bootstrap"
	"github.com/lojban/camxes-go/peg/parsing"
	"github.com/lojban/camxes-go/peg/rule"
)

// Transformer walks a CST against the original source text it was parsed
// from — identifiers and literals are reassembled by slicing source spans
// rather than being re-captured during parsing.
type Transformer struct {
	Source string
}

// Build validates and lowers cst (the single-element root list the
// bootstrap's "text" rule produced) into a rule map keyed by non-terminal
// name. The caller supplies its own start symbol separately when it builds
// the resulting grammar — Build only needs to confirm the CST root is a
// well-formed "text" node.
func (t *Transformer) Build(cst []parsing.ParseNode) (map[string]*rule.Rule, error) {
	if len(cst) != 1 {
		return nil, &Error{Kind: CstShouldOnlyHaveOneRoot, Message: "Invalid root structure"}
	}
	root := cst[0]
	if root.IsTerminal() || root.NonTerminal != bootstrap.Text {
		name := root.NonTerminal
		if name == "" {
			name = "Terminal"
		}
		return nil, &Error{Kind: CstShouldStartWithGrammar, Message: "Found '" + name + "' instead!"}
	}
	return t.buildGrammarRules(root.Children)
}

func (t *Transformer) buildGrammarRules(tokens []parsing.ParseNode) (map[string]*rule.Rule, error) {
	rules := make(map[string]*rule.Rule)
	refs := make(map[string]bool)

	// Skip the leading Spacing token; stop at EndOfFile.
	for _, tok := range tokens[1:] {
		if isToken(bootstrap.EndOfFile, tok) {
			break
		}
		name, expr, newRefs, err := t.processRule(tok)
		if err != nil {
			return nil, err
		}
		rules[name] = expr
		for r := range newRefs {
			refs[r] = true
		}
	}

	var undefined []string
	for r := range refs {
		if _, ok := rules[r]; !ok {
			undefined = append(undefined, r)
		}
	}
	if len(undefined) > 0 {
		sort.Strings(undefined)
		return nil, &Error{Kind: AmbiguousNonTerminal, Message: "Missing rules: [" + strings.Join(undefined, ", ") + "]!"}
	}
	return rules, nil
}

func (t *Transformer) processRule(node parsing.ParseNode) (string, *rule.Rule, map[string]bool, error) {
	tokens, err := getTokens(bootstrap.Definition, node)
	if err != nil {
		return "", nil, nil, err
	}
	if len(tokens) != 3 {
		return "", nil, nil, errWrongCount("Definition needs 3 tokens")
	}
	id, arrow, expr := tokens[0], tokens[1], tokens[2]
	name, err := t.extractIdentifier(id)
	if err != nil {
		return "", nil, nil, err
	}
	if !isToken(bootstrap.LeftArrow, arrow) {
		return "", nil, nil, errUnexpected(bootstrap.LeftArrow)
	}
	r, refs, err := t.convertRule(expr)
	if err != nil {
		return "", nil, nil, err
	}
	return name, r, refs, nil
}

func (t *Transformer) extractIdentifier(node parsing.ParseNode) (string, error) {
	tokens, err := getTokens(bootstrap.Identifier, node)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, tok := range tokens {
		if isToken(bootstrap.Spacing, tok) {
			break
		}
		if tok.IsTerminal() {
			b.WriteString(t.Source[tok.Span.Begin:tok.Span.End])
		}
	}
	if b.Len() == 0 {
		return "", &Error{Kind: EmptyIdentifier}
	}
	return b.String(), nil
}

func (t *Transformer) convertRule(node parsing.ParseNode) (*rule.Rule, map[string]bool, error) {
	tokens, err := getTokens(bootstrap.Expression, node)
	if err != nil {
		return nil, nil, err
	}

	var exprs []*rule.Rule
	refs := make(map[string]bool)
	for i := 0; i < len(tokens); i += 2 {
		end := i + 2
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[i:end]
		expr, newRefs, err := t.convertSequence(chunk[0])
		if err != nil {
			return nil, nil, err
		}
		exprs = append(exprs, expr)
		for r := range newRefs {
			refs[r] = true
		}
		if len(chunk) > 1 && !isToken(bootstrap.Slash, chunk[1]) {
			return nil, nil, errUnexpected(bootstrap.Slash)
		}
	}

	switch len(exprs) {
	case 0:
		return rule.NewEmpty(), refs, nil
	case 1:
		return exprs[0], refs, nil
	default:
		return rule.NewChoice(exprs), refs, nil
	}
}

func (t *Transformer) convertSequence(node parsing.ParseNode) (*rule.Rule, map[string]bool, error) {
	tokens, err := getTokens(bootstrap.SequenceSym, node)
	if err != nil {
		return nil, nil, err
	}

	var exprs []*rule.Rule
	refs := make(map[string]bool)
	for i := 0; i+3 <= len(tokens); i += 3 {
		chunk := tokens[i : i+3]
		expr, newRefs, err := t.convertPrimary(chunk[1])
		if err != nil {
			return nil, nil, err
		}
		expr, err = t.applySuffix(chunk[2], expr)
		if err != nil {
			return nil, nil, err
		}
		expr, err = t.applyPrefix(chunk[0], expr)
		if err != nil {
			return nil, nil, err
		}
		exprs = append(exprs, expr)
		for r := range newRefs {
			refs[r] = true
		}
	}

	switch len(exprs) {
	case 0:
		return rule.NewEmpty(), refs, nil
	case 1:
		return exprs[0], refs, nil
	default:
		return rule.NewSequence(exprs), refs, nil
	}
}

func (t *Transformer) applyPrefix(node parsing.ParseNode, expr *rule.Rule) (*rule.Rule, error) {
	tokens, err := getTokens(bootstrap.Prefix, node)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return expr, nil
	}
	first := tokens[0]
	switch {
	case isToken(bootstrap.And, first):
		return rule.NewAnd(expr), nil
	case isToken(bootstrap.Not, first):
		return rule.NewNot(expr), nil
	default:
		return nil, errUnexpected("Expected %s/%s", bootstrap.And, bootstrap.Not)
	}
}

func (t *Transformer) applySuffix(node parsing.ParseNode, expr *rule.Rule) (*rule.Rule, error) {
	tokens, err := getTokens(bootstrap.Suffix, node)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return expr, nil
	}
	first := tokens[0]
	switch {
	case isToken(bootstrap.Question, first):
		return rule.NewOptional(expr), nil
	case isToken(bootstrap.Star, first):
		return rule.NewZeroOrMore(expr), nil
	case isToken(bootstrap.Plus, first):
		return rule.NewOneOrMore(expr), nil
	default:
		return nil, errUnexpected("Invalid suffix")
	}
}

func (t *Transformer) convertPrimary(node parsing.ParseNode) (*rule.Rule, map[string]bool, error) {
	tokens, err := getTokens(bootstrap.Primary, node)
	if err != nil {
		return nil, nil, err
	}
	if len(tokens) == 3 && isToken(bootstrap.Open, tokens[0]) && isToken(bootstrap.Close, tokens[2]) {
		return t.convertRule(tokens[1])
	}
	if len(tokens) == 1 {
		tok := tokens[0]
		name, err := getName(tok)
		if err != nil {
			return nil, nil, err
		}
		switch name {
		case bootstrap.Identifier:
			id, err := t.extractIdentifier(tok)
			if err != nil {
				return nil, nil, err
			}
			return rule.NewNonTerminal(id), map[string]bool{id: true}, nil
		case bootstrap.Literal:
			r, err := t.convertLiteral(tok)
			return r, nil, err
		case bootstrap.Class:
			r, err := t.convertClass(tok)
			return r, nil, err
		case bootstrap.Dot:
			return rule.NewAny(), nil, nil
		default:
			return nil, nil, errUnexpected("Invalid primary")
		}
	}
	return nil, nil, errWrongCount("Primary needs 1 or 3 tokens")
}

func (t *Transformer) unescapeChar(node parsing.ParseNode) (string, error) {
	if node.IsTerminal() || node.NonTerminal != bootstrap.Char {
		return "", errUnexpected("Invalid char parse_node")
	}
	s := t.Source[node.Span.Begin:node.Span.End]
	// Unescape in this exact order: each replacement is a distinct
	// two-character sequence, so order does not cause double-unescaping,
	// but it must match the source's recognition order.
	s = strings.ReplaceAll(s, `\'`, `'`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\[`, `[`)
	s = strings.ReplaceAll(s, `\]`, `]`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s, nil
}

func (t *Transformer) convertLiteral(node parsing.ParseNode) (*rule.Rule, error) {
	tokens, err := getTokens(bootstrap.Literal, node)
	if err != nil {
		return nil, err
	}
	if len(tokens) < 3 {
		return nil, errWrongCount("Literal needs at least 3 tokens")
	}
	var b strings.Builder
	for _, tok := range tokens[1 : len(tokens)-2] {
		ch, err := t.unescapeChar(tok)
		if err != nil {
			return nil, err
		}
		b.WriteString(ch)
	}
	return rule.NewLiteral(b.String()), nil
}

func (t *Transformer) convertClass(node parsing.ParseNode) (*rule.Rule, error) {
	tokens, err := getTokens(bootstrap.Class, node)
	if err != nil {
		return nil, err
	}
	var parts []*rule.Rule
	var symbols []string
	if len(tokens) > 2 {
		for _, member := range tokens[1 : len(tokens)-2] {
			memberTokens, err := getTokens(bootstrap.ClassMember, member)
			if err != nil {
				return nil, err
			}
			for _, tok := range memberTokens {
				if isToken(bootstrap.Char, tok) {
					ch, err := t.unescapeChar(tok)
					if err != nil {
						return nil, err
					}
					symbols = append(symbols, ch)
				} else {
					r, err := t.convertRange(tok)
					if err != nil {
						return nil, err
					}
					parts = append(parts, r)
				}
			}
		}
	}
	if len(symbols) > 0 {
		parts = append(parts, rule.NewClass(symbols))
	}
	switch len(parts) {
	case 0:
		return rule.NewEmpty(), nil
	case 1:
		return parts[0], nil
	default:
		return rule.NewChoice(parts), nil
	}
}

func (t *Transformer) convertRange(node parsing.ParseNode) (*rule.Rule, error) {
	tokens, err := getTokens(bootstrap.RangeRule, node)
	if err != nil {
		return nil, err
	}
	if len(tokens) != 3 {
		return nil, errWrongCount("Range needs 3 tokens")
	}
	lo, err := t.unescapeChar(tokens[0])
	if err != nil {
		return nil, err
	}
	hi, err := t.unescapeChar(tokens[2])
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, errUnexpected("Invalid range %s-%s", lo, hi)
	}
	return rule.NewRange(lo, hi), nil
}

func getTokens(name string, node parsing.ParseNode) ([]parsing.ParseNode, error) {
	if node.IsTerminal() {
		return nil, errUnexpected("Expected %s", name)
	}
	if node.NonTerminal != name {
		return nil, errUnexpected("Expected %s, got %s", name, node.NonTerminal)
	}
	return node.Children, nil
}

func isToken(name string, node parsing.ParseNode) bool {
	return !node.IsTerminal() && node.NonTerminal == name
}

func getName(node parsing.ParseNode) (string, error) {
	if node.IsTerminal() {
		return "", errUnexpected("Expected non-terminal")
	}
	return node.NonTerminal, nil
}
