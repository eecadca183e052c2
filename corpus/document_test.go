// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeDocsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestEachDocument(t *testing.T) {
	path := writeDocsFile(
		t,
		`{"text": "昔々あるところに", "subset": "train", "id": "n001", "length": 8}`+"\n"+
			"\n"+
			`{"text": "おじいさんとおばあさんが", "subset": "test", "id": "n002", "length": 12}`+"\n",
	)
	var docs []Document
	var lines []int
	err := EachDocument(context.Background(), path, func(doc Document, lineNum int) error {
		docs = append(docs, doc)
		lines = append(lines, lineNum)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "昔々あるところに", docs[0].Text)
	assert.Equal(t, "train", docs[0].Subset)
	assert.Equal(t, uint64(12), docs[1].Length)
	// empty lines are skipped but still counted
	assert.Equal(t, []int{1, 3}, lines)
}

func TestEachDocumentNoTrailingNewline(t *testing.T) {
	path := writeDocsFile(t, `{"text": "最後の行", "id": "n003"}`)
	numDocs := 0
	err := EachDocument(context.Background(), path, func(doc Document, lineNum int) error {
		numDocs++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, numDocs)
}

func TestEachDocumentPropagatesFnError(t *testing.T) {
	path := writeDocsFile(t, `{"text": "a"}`+"\n"+`{"text": "b"}`+"\n")
	numDocs := 0
	err := EachDocument(context.Background(), path, func(doc Document, lineNum int) error {
		numDocs++
		return fmt.Errorf("stop here")
	})
	assert.EqualError(t, err, "stop here")
	assert.Equal(t, 1, numDocs)
}

func TestEachDocumentDecodeError(t *testing.T) {
	path := writeDocsFile(t, "{not a json}\n")
	err := EachDocument(context.Background(), path, func(doc Document, lineNum int) error {
		return nil
	})
	assert.Error(t, err)
}

func TestEachDocumentCancelledContext(t *testing.T) {
	path := writeDocsFile(t, `{"text": "a"}`+"\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := EachDocument(ctx, path, func(doc Document, lineNum int) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEachDocumentMissingFile(t *testing.T) {
	err := EachDocument(context.Background(), "/no/such/file.jsonl", func(doc Document, lineNum int) error {
		return nil
	})
	assert.Error(t, err)
}
