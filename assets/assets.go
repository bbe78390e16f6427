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

// Package assets resolves grammar text for CLI collaborators: either from
// disk (or a hermetic in-memory filesystem under "/memfs/", for tests) or
// from a statically linked grammar constant.
package assets

import (
	"context"
	"fmt"
	"io/ioutil"
	"strings"
	"sync"

	"github.com/golang/leveldb/db"
	"github.com/golang/leveldb/memfs"

	"github.com/lojban/camxes-go/grammars"
)

var (
	once  sync.Once
	memFS db.FileSystem
)

// ReadGrammar resolves path to grammar source text. Paths prefixed with
// "/memfs/" are hijacked to an in-memory filesystem (filled by
// WriteMemGrammar), for tests that cannot depend on the working directory.
func ReadGrammar(ctx context.Context, path string) (string, error) {
	if strings.HasPrefix(path, "/memfs/") {
		once.Do(func() { memFS = memfs.New() })
		fi, err := memFS.Stat(path)
		if err != nil {
			return "", err
		}
		f, err := memFS.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		buf := make([]byte, int(fi.Size()))
		n, err := f.Read(buf)
		if err != nil {
			return "", err
		}
		return string(buf[:n]), nil
	}
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// WriteMemGrammar writes contents to a "/memfs/"-prefixed path, for tests
// that want to exercise ReadGrammar's file-reading path without touching
// the real filesystem.
func WriteMemGrammar(ctx context.Context, path, contents string) error {
	if !strings.HasPrefix(path, "/memfs/") {
		return fmt.Errorf("WriteMemGrammar: path %q must start with /memfs/", path)
	}
	once.Do(func() { memFS = memfs.New() })
	f, err := memFS.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write([]byte(contents))
	return err
}

// Builtin resolves the name of a statically linked grammar to its start
// symbol and source text.
func Builtin(name string) (start, source string, ok bool) {
	b, ok := grammars.Builtins[name]
	if !ok {
		return "", "", false
	}
	return b.Start, b.Source, true
}
