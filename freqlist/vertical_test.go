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
	"context"
	"fmt"
	"testing"

	"tango/corpus"

	"github.com/stretchr/testify/assert"
	"github.com/tomachalek/vertigo/v6"
)

func newTestingExtractor(t *testing.T) (*freqExtractor, chan freqBuildStatus) {
	statusChan := make(chan freqBuildStatus, 10)
	args := FreqBuildArgs{
		DatasetID: "vtest",
		Format:    corpus.FormatVertical,
		Vertical: &corpus.VerticalSetup{
			WordColIdx:  0,
			LemmaColIdx: 1,
			PosColIdx:   2,
			SentStruct:  "s",
		},
		MaxNumErrors: 1,
	}
	return newFreqExtractor(context.Background(), args, statusChan), statusChan
}

func TestFreqExtractorMergesSentence(t *testing.T) {
	fex, _ := newTestingExtractor(t)
	tokens := []*vertigo.Token{
		{Word: "食べ", Attrs: []string{"食べる", "動詞"}},
		{Word: "まし", Attrs: []string{"ます", "助動詞"}},
		{Word: "た", Attrs: []string{"た", "助動詞"}},
		{Word: "犬", Attrs: []string{"犬", "名詞"}},
	}
	for i, tk := range tokens {
		assert.NoError(t, fex.ProcToken(tk, i+1, nil))
	}
	err := fex.ProcStructClose(&vertigo.StructureClose{Name: "s"}, 5, nil)
	assert.NoError(t, err)

	assert.Equal(t, 1, fex.sentCounter)
	assert.Equal(t, 1, fex.freqList.Verbs["食べました"].Frequency)
	assert.Equal(t, "食べる", fex.freqList.Verbs["食べました"].DictionaryForm)
	assert.Equal(t, 1, fex.freqList.Verbs["犬"].Frequency)
	assert.Equal(t, 1, fex.freqList.Inflections["ました"])
}

func TestFreqExtractorSentenceBoundaryBlocksMerge(t *testing.T) {
	fex, _ := newTestingExtractor(t)
	assert.NoError(t, fex.ProcToken(
		&vertigo.Token{Word: "食べ", Attrs: []string{"食べる", "動詞"}}, 1, nil))
	assert.NoError(t, fex.ProcStructClose(&vertigo.StructureClose{Name: "s"}, 2, nil))
	assert.NoError(t, fex.ProcStruct(&vertigo.Structure{Name: "s"}, 3, nil))
	assert.NoError(t, fex.ProcToken(
		&vertigo.Token{Word: "まし", Attrs: []string{"ます", "助動詞"}}, 4, nil))
	assert.NoError(t, fex.ProcToken(
		&vertigo.Token{Word: "た", Attrs: []string{"た", "助動詞"}}, 5, nil))
	fex.flushSentence()

	assert.Equal(t, 1, fex.freqList.Verbs["食べ"].Frequency)
	assert.NotContains(t, fex.freqList.Verbs, "食べました")
	assert.Equal(t, 0, len(fex.freqList.Inflections))
}

func TestFreqExtractorTooManyErrors(t *testing.T) {
	fex, _ := newTestingExtractor(t)
	assert.NoError(t, fex.ProcToken(nil, 1, fmt.Errorf("broken line")))
	err := fex.ProcToken(nil, 2, fmt.Errorf("broken line"))
	assert.ErrorIs(t, err, ErrorTooManyParsingErrors)
}

func TestFreqExtractorFlushOnEmptySentence(t *testing.T) {
	fex, _ := newTestingExtractor(t)
	fex.flushSentence()
	assert.Equal(t, 0, fex.sentCounter)
}
