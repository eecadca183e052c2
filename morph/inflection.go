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

import "strings"

// inflectionPattern is a sequence of auxiliary morphemes which -
// when following a verb - form a recognized inflection. The
// patterns are matched in the declared order, i.e. longer
// sequences must come first so e.g. ませ+ん+でし+た is not
// consumed as a mere ませ+ん.
type inflectionPattern struct {
	parts  []string
	suffix string
}

func newPattern(parts ...string) inflectionPattern {
	return inflectionPattern{parts: parts, suffix: strings.Join(parts, "")}
}

var inflectionPatterns = []inflectionPattern{
	newPattern("ませ", "ん", "でし", "た"),
	newPattern("させ", "られ", "ない"),
	newPattern("られ", "ませ", "ん"),
	newPattern("させ", "ない"),
	newPattern("させ", "られる"),
	newPattern("なかっ", "た"),
	newPattern("なく", "て"),
	newPattern("まし", "た"),
	newPattern("せ", "ない"),
	newPattern("ませ", "ん"),
	newPattern("られ", "ない"),
	newPattern("られ", "ます"),
	newPattern("れ", "ない"),
	newPattern("させる"),
	newPattern("せる"),
	newPattern("た"),
	newPattern("だ"),
	newPattern("て"),
	newPattern("で"),
	newPattern("な"),
	newPattern("ない"),
	newPattern("ます"),
	newPattern("られる"),
	newPattern("れる"),
}

// KnownInflections lists all the inflection suffixes the merger
// is able to detect.
func KnownInflections() []string {
	ans := make([]string, len(inflectionPatterns))
	for i, p := range inflectionPatterns {
		ans[i] = p.suffix
	}
	return ans
}

func (p inflectionPattern) matchesAt(tokens []Token, pos int) bool {
	if pos+len(p.parts) > len(tokens) {
		return false
	}
	for i, part := range p.parts {
		if tokens[pos+i].Surface != part {
			return false
		}
	}
	return true
}

// MergeInflections rewrites the token stream so each verb
// followed by a recognized auxiliary sequence becomes a single
// token keeping the verb's dictionary form and part of speech.
// The second returned value counts the detected inflection
// suffixes. Tokens consumed by a merge do not appear in the
// output on their own.
func MergeInflections(tokens []Token) ([]Token, map[string]int) {
	result := make([]Token, 0, len(tokens))
	inflections := make(map[string]int)
	for i := 0; i < len(tokens); i++ {
		tk := tokens[i]
		if tk.PoS != PosVerb {
			result = append(result, tk)
			continue
		}
		var matched bool
		for _, p := range inflectionPatterns {
			if p.matchesAt(tokens, i+1) {
				inflections[p.suffix]++
				result = append(result, Token{
					Surface:  tk.Surface + p.suffix,
					PoS:      tk.PoS,
					DictForm: tk.DictForm,
				})
				i += len(p.parts)
				matched = true
				break
			}
		}
		if !matched {
			result = append(result, tk)
		}
	}
	return result, inflections
}
