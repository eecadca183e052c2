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
	"os"
	"testing"

	"tango/morph"

	"github.com/stretchr/testify/assert"
)

func testingFreqList() *FrequencyList {
	fl := NewFrequencyList()
	fl.AddToken(morph.Token{Surface: "食べました", DictForm: "食べる", PoS: "動詞"})
	fl.AddToken(morph.Token{Surface: "食べました", DictForm: "食べる", PoS: "動詞"})
	fl.AddToken(morph.Token{Surface: "犬", DictForm: "犬", PoS: "名詞"})
	fl.AddInflections(map[string]int{"ました": 2})
	return fl
}

func TestWriteAndLoadExport(t *testing.T) {
	dir := t.TempDir()
	fl := testingFreqList()
	path, err := writeExport(dir, "novels_2024", fl)
	assert.NoError(t, err)
	loaded, err := LoadExport(dir, "novels_2024")
	assert.NoError(t, err)
	assert.Equal(t, fl, loaded)
	assert.FileExists(t, path)
}

func TestWriteExportIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	fl := testingFreqList()
	path1, err := writeExport(dir, "ds1", fl)
	assert.NoError(t, err)
	data1, err := os.ReadFile(path1)
	assert.NoError(t, err)
	path2, err := writeExport(dir, "ds1", fl)
	assert.NoError(t, err)
	data2, err := os.ReadFile(path2)
	assert.NoError(t, err)
	assert.Equal(t, data1, data2)
}

func TestLoadExportMissingFile(t *testing.T) {
	_, err := LoadExport(t.TempDir(), "unknown")
	assert.Error(t, err)
}

func TestLoadExportRejectsInvalidSchema(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(
		exportFilePath(dir, "broken"),
		[]byte(`{"verbs": {"犬": {"frequency": 1}}, "inflections": {}}`),
		0644,
	)
	assert.NoError(t, err)
	_, err = LoadExport(dir, "broken")
	assert.Error(t, err)
}

func TestExportFilePathSanitizesDatasetID(t *testing.T) {
	path := exportFilePath("/tmp/exports", "my/../dataset")
	assert.Equal(t, "/tmp/exports/my____dataset.json", path)
}
