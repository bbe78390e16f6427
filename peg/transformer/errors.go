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

import "fmt"

// ErrorKind discriminates why lowering a CST into a rule map failed.
type ErrorKind int

const (
	CstShouldOnlyHaveOneRoot ErrorKind = iota
	CstShouldStartWithGrammar
	UnExpectedToken
	AmbiguousNonTerminal
	EmptyIdentifier
	WrongNumberOfTokens
)

// Error is the transformer's failure type. Message carries the detail text
// the original variant payload would have held (e.g. the offending token
// name, or the list of missing rule names).
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case CstShouldOnlyHaveOneRoot:
		return fmt.Sprintf("CST should have exactly one root: %s", e.Message)
	case CstShouldStartWithGrammar:
		return fmt.Sprintf("CST should start with a grammar root: %s", e.Message)
	case UnExpectedToken:
		return fmt.Sprintf("Unexpected token: %s", e.Message)
	case AmbiguousNonTerminal:
		return fmt.Sprintf("Ambiguous non-terminal reference: %s", e.Message)
	case EmptyIdentifier:
		return "Empty identifier"
	case WrongNumberOfTokens:
		return fmt.Sprintf("Wrong number of tokens: %s", e.Message)
	default:
		return "unknown transform error"
	}
}

func errUnexpected(format string, args ...interface{}) *Error {
	return &Error{Kind: UnExpectedToken, Message: fmt.Sprintf(format, args...)}
}

func errWrongCount(format string, args ...interface{}) *Error {
	return &Error{Kind: WrongNumberOfTokens, Message: fmt.Sprintf(format, args...)}
}
