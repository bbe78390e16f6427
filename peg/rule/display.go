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

package rule

import "strings"

// String renders r in canonical PEG syntax, used only for diagnostics.
func (r *Rule) String() string {
	if r == nil {
		return "<nil>"
	}
	switch r.Kind {
	case Empty:
		return "()"
	case Any:
		return "."
	case Literal:
		escaped := strings.NewReplacer(`\`, `\\`, "\n", `\n`, `'`, `\'`).Replace(r.Text)
		return "'" + escaped + "'"
	case NonTerminal:
		return r.Text
	case Range:
		return "[" + r.Low + "-" + r.High + "]"
	case Class:
		escaper := strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)
		var b strings.Builder
		b.WriteByte('[')
		for _, s := range r.Symbols {
			b.WriteString(escaper.Replace(s))
		}
		b.WriteByte(']')
		return b.String()
	case Group:
		return "(" + r.Sub.String() + ")"
	case ZeroOrMore:
		return r.Sub.String() + "*"
	case OneOrMore:
		return r.Sub.String() + "+"
	case Optional:
		return r.Sub.String() + "?"
	case And:
		return "&" + r.Sub.String()
	case Not:
		return "!" + r.Sub.String()
	case Choice:
		return joinParenthesized(r.Subs, " / ")
	case Sequence:
		return joinParenthesized(r.Subs, " ")
	default:
		return "<invalid rule>"
	}
}

func joinParenthesized(rules []*Rule, sep string) string {
	parts := make([]string, len(rules))
	for i, sub := range rules {
		parts[i] = sub.String()
	}
	joined := strings.Join(parts, sep)
	if len(rules) > 1 {
		return "(" + joined + ")"
	}
	return joined
}
