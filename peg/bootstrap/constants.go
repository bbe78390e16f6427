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

// Package bootstrap materializes the fixed rule graph that describes PEG
// syntax itself. It is never parsed from text — the meta-grammar is small
// and stable enough to build directly as Rule values, so there is no
// bootstrapping-problem to solve here, only a direct transliteration of
// §4.C's grammar into constructor calls.
package bootstrap

// Rule names of the meta-grammar, used as NonTerminal targets both here and
// by peg/transformer when it walks the CST this grammar produces.
const (
	Text        = "text"
	EndOfFile   = "EndOfFile"
	Spacing     = "Spacing"
	LeftArrow   = "LEFTARROW"
	Slash       = "SLASH"
	And         = "AND"
	Not         = "NOT"
	Question    = "QUESTION"
	Star        = "STAR"
	Plus        = "PLUS"
	Open        = "OPEN"
	Close       = "CLOSE"
	Dot         = "DOT"
	Char        = "Char"
	RangeRule   = "Range"
	ClassMember = "ClassMember"
	Class       = "Class"
	Literal     = "Literal"
	Identifier  = "Identifier"
	Expression  = "Expression"
	Primary     = "Primary"
	Suffix      = "Suffix"
	Prefix      = "Prefix"
	SequenceSym = "Sequence"
	Definition  = "Definition"
)
