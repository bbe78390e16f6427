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

// Package fixtures holds shared grammar/outcome tables reused across
// package tests, in the same shape as this codebase's other table-driven
// parser test data: a grammar plus a list of expected (input, ok) outcomes.
package fixtures

// InvalidGrammar is a grammar that must fail compilation.
type InvalidGrammar struct {
	Name    string
	Grammar string
}

// Outcome is one expected (input, success) pair for a compiled grammar.
type Outcome struct {
	Input string
	Ok    bool
}

// PositiveGrammar is a grammar that must compile, tested against Outcomes.
type PositiveGrammar struct {
	Name     string
	Start    string
	Grammar  string
	Outcomes []Outcome
}

// Invalid holds grammars that must fail to compile, either because the
// bootstrap rejects the text outright or because the transformer finds a
// structural or referential problem.
var Invalid = []InvalidGrammar{
	{"double arrow", "Ident <- abc <- xyz"},
	{"comment-like garbage", "#abc"},
	{"unterminated single-quote", "abc <- '"},
	{"unterminated double-quote", "abc <- \""},
	{"dangling question", "I <- ?"},
	{"dangling star", "I <- *"},
	{"unmatched open paren", "I <- ("},
	{"unmatched close paren", "I <- )"},
	{"unmatched nested paren", "I <- ( 'abc' ()"},
	{"undefined reference", "A <- B"},
	{"undefined reference chain", "A <- B \n B <- C"},
	{"invalid range", "I <- [z-a]"},
	{"dangling and", "I <- &"},
	{"dangling not", "I <- !"},
}

// Positive holds grammars that must compile, each with input/outcome pairs
// exercising the resulting parser.
var Positive = []PositiveGrammar{
	{
		Name: "single literal", Start: "start",
		Grammar: "start <- 'hello'",
		Outcomes: []Outcome{
			{"hello", true},
			{"goodbye", false},
		},
	},
	{
		Name: "sequence of literals", Start: "start",
		Grammar: "start <- 'hello' ' ' 'world'",
		Outcomes: []Outcome{
			{"hello world", true},
			{"hello", false},
		},
	},
	{
		Name: "one or more", Start: "start",
		Grammar: "start <- 'a'+",
		Outcomes: []Outcome{
			{"aaaa", true},
			{"", false},
		},
	},
	{
		Name: "choice", Start: "start",
		Grammar: "start <- 'a' / 'b'",
		Outcomes: []Outcome{
			{"a", true},
			{"b", true},
			{"c", false},
		},
	},
	{
		Name: "negative lookahead", Start: "start",
		Grammar: "start <- !'a' .",
		Outcomes: []Outcome{
			{"b", true},
			{"a", false},
		},
	},
	{
		Name: "character range greedy", Start: "start",
		Grammar: "start <- [a-z]+",
		Outcomes: []Outcome{
			{"abc9", true},
			{"9", false},
		},
	},
	{
		Name: "nested definitions", Start: "start",
		Grammar: "start <- foo \n foo <- 'x'",
		Outcomes: []Outcome{
			{"x", true},
			{"y", false},
		},
	},
	{
		Name: "escaped literal", Start: "start",
		Grammar: `start <- 'it\'s'`,
		Outcomes: []Outcome{
			{"it's", true},
			{"its", false},
		},
	},
	{
		Name: "class with escapes", Start: "start",
		Grammar: `start <- [\[\]\\]+`,
		Outcomes: []Outcome{
			{`[]\`, true},
			{"ab", false},
		},
	},
}
