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
	"testing"

	"github.com/stretchr/testify/assert"
)

func verb(surface, dictForm string) Token {
	return Token{Surface: surface, PoS: PosVerb, DictForm: dictForm}
}

func aux(surface string) Token {
	return Token{Surface: surface, PoS: "助動詞", DictForm: surface}
}

func TestMergePoliteNegativePast(t *testing.T) {
	tokens := []Token{
		verb("食べ", "食べる"),
		aux("ませ"),
		aux("ん"),
		aux("でし"),
		aux("た"),
	}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, []Token{verb("食べませんでした", "食べる")}, merged)
	assert.Equal(t, map[string]int{"ませんでした": 1}, infl)
}

func TestMergePrefersLongestPattern(t *testing.T) {
	// ませ+ん must not win over ませ+ん+でし+た
	tokens := []Token{
		verb("行き", "行く"),
		aux("ませ"),
		aux("ん"),
		aux("でし"),
		aux("た"),
		verb("見", "見る"),
		aux("ませ"),
		aux("ん"),
	}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, []Token{
		verb("行きませんでした", "行く"),
		verb("見ません", "見る"),
	}, merged)
	assert.Equal(t, map[string]int{"ませんでした": 1, "ません": 1}, infl)
}

func TestMergeSinglePartPatterns(t *testing.T) {
	tokens := []Token{
		verb("食べ", "食べる"),
		aux("た"),
		verb("飲ん", "飲む"),
		aux("だ"),
	}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, []Token{
		verb("食べた", "食べる"),
		verb("飲んだ", "飲む"),
	}, merged)
	assert.Equal(t, map[string]int{"た": 1, "だ": 1}, infl)
}

func TestMergeCountsRepeatedInflections(t *testing.T) {
	tokens := []Token{
		verb("書き", "書く"),
		aux("まし"),
		aux("た"),
		verb("読み", "読む"),
		aux("まし"),
		aux("た"),
	}
	_, infl := MergeInflections(tokens)
	assert.Equal(t, map[string]int{"ました": 2}, infl)
}

func TestMergeIgnoresNonVerbs(t *testing.T) {
	tokens := []Token{
		{Surface: "猫", PoS: "名詞", DictForm: "猫"},
		aux("た"),
	}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, tokens, merged)
	assert.Empty(t, infl)
}

func TestMergeVerbWithoutAuxiliaries(t *testing.T) {
	tokens := []Token{verb("走る", "走る")}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, tokens, merged)
	assert.Empty(t, infl)
}

func TestMergeAtStreamEnd(t *testing.T) {
	// the pattern window must not read past the stream end
	tokens := []Token{
		verb("食べ", "食べる"),
		aux("ませ"),
		aux("ん"),
	}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, []Token{verb("食べません", "食べる")}, merged)
	assert.Equal(t, map[string]int{"ません": 1}, infl)
}

func TestMergeCausativePassive(t *testing.T) {
	tokens := []Token{
		verb("食べ", "食べる"),
		aux("させ"),
		aux("られ"),
		aux("ない"),
	}
	merged, infl := MergeInflections(tokens)
	assert.Equal(t, []Token{verb("食べさせられない", "食べる")}, merged)
	assert.Equal(t, map[string]int{"させられない": 1}, infl)
}

func TestKnownInflectionsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range KnownInflections() {
		assert.False(t, seen[v], "duplicate inflection %s", v)
		seen[v] = true
	}
}

func TestSplitSegments(t *testing.T) {
	ans := SplitSegments("今日は晴れ。明日も，晴れ！多分…")
	assert.Equal(t, []string{"今日は晴れ", "明日も", "晴れ", "多分"}, ans)
}

func TestIsWordScript(t *testing.T) {
	assert.True(t, IsWordScript("食べる"))
	assert.True(t, IsWordScript("カタカナ"))
	assert.True(t, IsWordScript("漢字"))
	assert.False(t, IsWordScript("abc"))
	assert.False(t, IsWordScript("食べた!"))
	assert.False(t, IsWordScript("123"))
	assert.False(t, IsWordScript(""))
}

func TestNormalizeFoldsWidth(t *testing.T) {
	assert.Equal(t, "カタカナ", Normalize("ｶﾀｶﾅ"))
}
