// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

// Document is a single corpus document as stored in a JSONL dump.
// Only Text enters the analysis; the rest is metadata coming from
// the source web corpus and is used for per-subset statistics.
type Document struct {
	Text     string   `json:"text"`
	Subset   string   `json:"subset"`
	Lang     string   `json:"lang"`
	ID       string   `json:"id"`
	Author   string   `json:"author"`
	UserID   uint64   `json:"userid"`
	Title    string   `json:"title"`
	Length   uint64   `json:"length"`
	Points   uint64   `json:"points"`
	Quality  float64  `json:"q"`
	Chapters int      `json:"chapters"`
	Keywords []string `json:"keywords"`
	IsR15    int      `json:"isr15"`
	Genre    *int     `json:"genre"`
	BigGenre int      `json:"biggenre"`
	IsR18    *int     `json:"isr18"`
	NocGenre *int     `json:"nocgenre"`
}

// EachDocument reads a JSONL file and calls fn for each decoded
// document. Empty lines are skipped. The iteration can be interrupted
// either via the provided context or by returning an error from fn.
func EachDocument(ctx context.Context, path string, fn func(doc Document, lineNum int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read documents from %s: %w", path, err)
	}
	defer f.Close()
	rd := bufio.NewReaderSize(f, 1024*1024)
	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("document reading interrupted: %w", ctx.Err())
		default:
		}
		line, err := rd.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read document line %d from %s: %w", i, path, err)
		}
		if tmp := strings.TrimSpace(line); tmp != "" {
			var doc Document
			if err2 := sonic.UnmarshalString(tmp, &doc); err2 != nil {
				return fmt.Errorf("failed to decode document on line %d of %s: %w", i, path, err2)
			}
			if err2 := fn(doc, i); err2 != nil {
				return err2
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}
