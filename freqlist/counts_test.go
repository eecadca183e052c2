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

func TestAddTokenFirstOccurrenceWins(t *testing.T) {
	fl := NewFrequencyList()
	fl.AddToken(morph.Token{Surface: "食べた", DictForm: "食べる", PoS: "動詞"})
	fl.AddToken(morph.Token{Surface: "食べた", DictForm: "たべる", PoS: "名詞"})
	assert.Equal(t, 2, fl.Verbs["食べた"].Frequency)
	assert.Equal(t, "食べる", fl.Verbs["食べた"].DictionaryForm)
	assert.Equal(t, "動詞", fl.Verbs["食べた"].PoS)
}

func TestAddTokenIgnoresNonWordScript(t *testing.T) {
	fl := NewFrequencyList()
	fl.AddToken(morph.Token{Surface: "ABC", DictForm: "ABC", PoS: "名詞"})
	fl.AddToken(morph.Token{Surface: "食べ123", DictForm: "食べる", PoS: "動詞"})
	fl.AddToken(morph.Token{Surface: "", DictForm: "", PoS: "記号"})
	assert.Equal(t, 0, len(fl.Verbs))
}

func TestAddInflections(t *testing.T) {
	fl := NewFrequencyList()
	fl.AddInflections(map[string]int{"ました": 2, "ない": 1})
	fl.AddInflections(map[string]int{"ました": 3})
	assert.Equal(t, 5, fl.Inflections["ました"])
	assert.Equal(t, 1, fl.Inflections["ない"])
}

func TestMergeWith(t *testing.T) {
	fl1 := NewFrequencyList()
	fl1.AddToken(morph.Token{Surface: "走った", DictForm: "走る", PoS: "動詞"})
	fl1.AddInflections(map[string]int{"た": 1})
	fl2 := NewFrequencyList()
	fl2.AddToken(morph.Token{Surface: "走った", DictForm: "はしる", PoS: "名詞"})
	fl2.AddToken(morph.Token{Surface: "犬", DictForm: "犬", PoS: "名詞"})
	fl2.AddInflections(map[string]int{"た": 2, "ます": 1})

	fl1.MergeWith(fl2)
	assert.Equal(t, 2, fl1.Verbs["走った"].Frequency)
	// the receiver's record wins for dict. form and PoS
	assert.Equal(t, "走る", fl1.Verbs["走った"].DictionaryForm)
	assert.Equal(t, "動詞", fl1.Verbs["走った"].PoS)
	assert.Equal(t, 1, fl1.Verbs["犬"].Frequency)
	assert.Equal(t, 3, fl1.Inflections["た"])
	assert.Equal(t, 1, fl1.Inflections["ます"])
}

func TestNumVerbTokens(t *testing.T) {
	fl := NewFrequencyList()
	fl.AddToken(morph.Token{Surface: "犬", DictForm: "犬", PoS: "名詞"})
	fl.AddToken(morph.Token{Surface: "犬", DictForm: "犬", PoS: "名詞"})
	fl.AddToken(morph.Token{Surface: "猫", DictForm: "猫", PoS: "名詞"})
	assert.Equal(t, 3, fl.NumVerbTokens())
}

func TestValidate(t *testing.T) {
	fl := NewFrequencyList()
	fl.AddToken(morph.Token{Surface: "犬", DictForm: "犬", PoS: "名詞"})
	assert.NoError(t, fl.Validate())
}

func TestValidateRejectsIncompleteRecord(t *testing.T) {
	fl := NewFrequencyList()
	fl.Verbs["犬"] = VerbRecord{Frequency: 1, PoS: "名詞"}
	assert.Error(t, fl.Validate())
}

func TestValidateRejectsNilMaps(t *testing.T) {
	fl := &FrequencyList{}
	assert.Error(t, fl.Validate())
}
