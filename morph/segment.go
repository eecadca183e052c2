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

package morph

import (
	"strings"
	"unicode"
)

func isSeparator(c rune) bool {
	return unicode.IsSpace(c) ||
		(c < unicode.MaxASCII && (unicode.IsPunct(c) || unicode.IsSymbol(c))) ||
		c == '，' ||
		c == '…' ||
		c == '‥' ||
		c == '。' ||
		c == '！' ||
		c == '？'
}

// SplitSegments splits raw document text on whitespace, ASCII
// punctuation and the common Japanese sentence punctuation.
// The analyzer is then applied per segment which keeps its
// lattice small even for documents with huge paragraphs.
func SplitSegments(text string) []string {
	return strings.FieldsFunc(text, isSeparator)
}
