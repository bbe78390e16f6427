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

// Command camxes compiles a PEG grammar and parses one input against it,
// printing the result. It always exits 0: a failed parse is a successful
// program run, and is printed to standard output, not standard error.
package main

import (
	"context"
	"flag"
	"fmt"

	log "github.com/golang/glog"

	"github.com/lojban/camxes-go/assets"
	"github.com/lojban/camxes-go/cst"
	"github.com/lojban/camxes-go/peg"
	"github.com/lojban/camxes-go/peg/parsing"
)

var (
	start   = flag.String("start", "", "start non-terminal; required unless -builtin is given")
	grammar = flag.String("grammar", "", "path to a grammar source file (supports /memfs/... in tests)")
	builtin = flag.String("builtin", "", "name of a statically linked grammar, e.g. loglan")
	useJSON = flag.Bool("json", false, "print the structural JSON shape instead of the diagnostic form")
)

func main() {
	flag.Parse()
	defer log.Flush()

	startSymbol, grammarText, err := resolveGrammar()
	if err != nil {
		fmt.Println(err)
		return
	}

	g, err := peg.Compile(startSymbol, grammarText)
	if err != nil {
		fmt.Println(err)
		return
	}

	input := ""
	if args := flag.Args(); len(args) > 0 {
		input = args[0]
	}

	printResult(g.Parse(input))
}

func resolveGrammar() (string, string, error) {
	if *builtin != "" {
		s, text, ok := assets.Builtin(*builtin)
		if !ok {
			return "", "", fmt.Errorf("unknown builtin grammar %q", *builtin)
		}
		return s, text, nil
	}
	if *grammar == "" {
		return "", "", fmt.Errorf("one of -grammar or -builtin is required")
	}
	if *start == "" {
		return "", "", fmt.Errorf("-start is required when -grammar is given")
	}
	text, err := assets.ReadGrammar(context.Background(), *grammar)
	if err != nil {
		return "", "", err
	}
	return *start, text, nil
}

func printResult(result parsing.ParseResult) {
	if *useJSON {
		if result.Ok() {
			out, err := cst.ToJSON(result.Nodes)
			if err != nil {
				fmt.Println(err)
				return
			}
			fmt.Println(string(out))
			return
		}
		out, err := cst.ErrorToJSON(result.Err)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(string(out))
		return
	}

	if result.Ok() {
		fmt.Println(cst.Pretty(result.Nodes))
		return
	}
	fmt.Println(cst.PrettyError(result.Err))
}
