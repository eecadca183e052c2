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
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// PosVerb is the IPADic part-of-speech tag for verbs
const PosVerb = "動詞"

var (
	wordScript = regexp.MustCompile(`^[\p{Han}\p{Katakana}\p{Hiragana}]+$`)
)

// Token is a single morpheme as provided by a morphological
// analyzer (or by a pre-analyzed vertical file).
type Token struct {
	Surface  string
	PoS      string
	DictForm string
}

// Analyzer processes a piece of raw text into morphemes.
// Instances are not required to be safe for concurrent use -
// each processing worker should keep its own one.
type Analyzer interface {
	Analyze(text string) []Token
}

// Normalize applies NFKC normalization so different encodings
// of the same word (e.g. half-width vs. full-width katakana)
// aggregate under a single key.
func Normalize(text string) string {
	return norm.NFKC.String(text)
}

// IsWordScript tests whether the value consists only of kanji,
// hiragana and katakana runes. Tokens failing the test (latin
// script, digits, punctuation leftovers) are not counted.
func IsWordScript(value string) bool {
	return wordScript.MatchString(value)
}
