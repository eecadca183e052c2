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
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// IPADic feature vector layout (same as MeCab's):
// 0 = part of speech, 6 = dictionary (base) form
const (
	featPos      = 0
	featDictForm = 6
)

// KagomeAnalyzer is an Analyzer backed by the Kagome tokenizer
// with the embedded IPA dictionary.
type KagomeAnalyzer struct {
	tok *tokenizer.Tokenizer
}

func (ka *KagomeAnalyzer) Analyze(text string) []Token {
	items := ka.tok.Tokenize(text)
	ans := make([]Token, 0, len(items))
	for _, item := range items {
		if item.Class == tokenizer.DUMMY {
			continue
		}
		features := item.Features()
		tk := Token{Surface: item.Surface}
		if len(features) > featPos {
			tk.PoS = features[featPos]
		}
		if len(features) > featDictForm {
			tk.DictForm = features[featDictForm]
		}
		ans = append(ans, tk)
	}
	return ans
}

func NewKagomeAnalyzer() (*KagomeAnalyzer, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create a Kagome analyzer: %w", err)
	}
	return &KagomeAnalyzer{tok: tok}, nil
}
