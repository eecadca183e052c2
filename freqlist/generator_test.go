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

package freqlist

import (
	"testing"

	"tango/morph"

	"github.com/stretchr/testify/assert"
)

// fakeAnalyzer returns canned token streams per segment so the
// analysis pipeline can be tested without a morphological dictionary.
type fakeAnalyzer struct {
	tokens map[string][]morph.Token
}

func (fa *fakeAnalyzer) Analyze(text string) []morph.Token {
	return fa.tokens[text]
}

func TestAnalyzeText(t *testing.T) {
	analyzer := &fakeAnalyzer{
		tokens: map[string][]morph.Token{
			"ご飯を食べました": {
				{Surface: "ご飯", DictForm: "ご飯", PoS: "名詞"},
				{Surface: "を", DictForm: "を", PoS: "助詞"},
				{Surface: "食べ", DictForm: "食べる", PoS: "動詞"},
				{Surface: "まし", DictForm: "ます", PoS: "助動詞"},
				{Surface: "た", DictForm: "た", PoS: "助動詞"},
			},
			"おいしかった": {
				{Surface: "おいしかっ", DictForm: "おいしい", PoS: "形容詞"},
				{Surface: "た", DictForm: "た", PoS: "助動詞"},
			},
		},
	}
	fl := NewFrequencyList()
	analyzeText(analyzer, "ご飯を食べました。おいしかった", fl)

	assert.Equal(t, 1, fl.Verbs["食べました"].Frequency)
	assert.Equal(t, "食べる", fl.Verbs["食べました"].DictionaryForm)
	assert.Equal(t, "動詞", fl.Verbs["食べました"].PoS)
	assert.Equal(t, 1, fl.Verbs["ご飯"].Frequency)
	assert.Equal(t, 1, fl.Verbs["を"].Frequency)
	assert.Equal(t, 1, fl.Inflections["ました"])
	// merging applies to verbs only, た after an adjective stays separate
	assert.Equal(t, 1, fl.Verbs["おいしかっ"].Frequency)
	assert.Equal(t, 1, fl.Verbs["た"].Frequency)
}

func TestAnalyzeTextNormalizesInput(t *testing.T) {
	analyzer := &fakeAnalyzer{
		tokens: map[string][]morph.Token{
			"カタカナ": {
				{Surface: "カタカナ", DictForm: "カタカナ", PoS: "名詞"},
			},
		},
	}
	fl := NewFrequencyList()
	analyzeText(analyzer, "ｶﾀｶﾅ", fl)
	assert.Equal(t, 1, fl.Verbs["カタカナ"].Frequency)
}
