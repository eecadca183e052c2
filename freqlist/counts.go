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
	"fmt"

	"tango/morph"
)

// VerbRecord is a value of the `verbs` mapping of the produced
// frequency list.
type VerbRecord struct {
	DictionaryForm string `json:"dictionary_form"`
	Frequency      int    `json:"frequency"`
	PoS            string `json:"pos"`
}

// FrequencyList is the core data produced by a dataset build.
// It directly maps to the exported JSON artifact.
type FrequencyList struct {
	Inflections map[string]int        `json:"inflections"`
	Verbs       map[string]VerbRecord `json:"verbs"`
}

// AddToken counts a single (possibly merged) token. Tokens
// containing anything else than kanji/hiragana/katakana are
// ignored. The first counted occurrence of a surface form
// determines its dictionary form and part of speech, further
// occurrences just increase the frequency.
func (fl *FrequencyList) AddToken(tk morph.Token) {
	if !morph.IsWordScript(tk.Surface) {
		return
	}
	curr, ok := fl.Verbs[tk.Surface]
	if !ok {
		fl.Verbs[tk.Surface] = VerbRecord{
			DictionaryForm: tk.DictForm,
			Frequency:      1,
			PoS:            tk.PoS,
		}
		return
	}
	curr.Frequency++
	fl.Verbs[tk.Surface] = curr
}

// AddInflections merges detected inflection counts in.
func (fl *FrequencyList) AddInflections(counts map[string]int) {
	for k, v := range counts {
		fl.Inflections[k] += v
	}
}

// MergeWith adds all the counts of another frequency list.
// The operation is commutative with respect to frequencies;
// in case both lists know a surface form, the record of fl
// takes precedence for dictionary form and part of speech.
func (fl *FrequencyList) MergeWith(other *FrequencyList) {
	for k, v := range other.Verbs {
		curr, ok := fl.Verbs[k]
		if !ok {
			fl.Verbs[k] = v
			continue
		}
		curr.Frequency += v.Frequency
		fl.Verbs[k] = curr
	}
	fl.AddInflections(other.Inflections)
}

// NumVerbTokens returns the total number of counted word tokens
func (fl *FrequencyList) NumVerbTokens() int {
	ans := 0
	for _, v := range fl.Verbs {
		ans += v.Frequency
	}
	return ans
}

// Validate tests the schema invariants of the list - i.e. that
// all the counts are positive and no record misses its
// dictionary form or part of speech.
func (fl *FrequencyList) Validate() error {
	if fl.Inflections == nil || fl.Verbs == nil {
		return fmt.Errorf("invalid frequency list: missing inflections and/or verbs")
	}
	for k, v := range fl.Inflections {
		if v < 0 {
			return fmt.Errorf("invalid frequency list: negative count of inflection %s", k)
		}
	}
	for k, v := range fl.Verbs {
		if v.Frequency < 0 {
			return fmt.Errorf("invalid frequency list: negative frequency of %s", k)
		}
		if v.DictionaryForm == "" {
			return fmt.Errorf("invalid frequency list: missing dictionary form of %s", k)
		}
		if v.PoS == "" {
			return fmt.Errorf("invalid frequency list: missing part of speech of %s", k)
		}
	}
	return nil
}

func NewFrequencyList() *FrequencyList {
	return &FrequencyList{
		Inflections: make(map[string]int),
		Verbs:       make(map[string]VerbRecord),
	}
}
