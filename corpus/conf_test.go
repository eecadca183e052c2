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

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeDatasetConf(t *testing.T, confDir, name, contents string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(confDir, name), []byte(contents), 0644)
	assert.NoError(t, err)
}

func TestDataFormatValidate(t *testing.T) {
	assert.NoError(t, FormatJSONL.Validate())
	assert.NoError(t, FormatVertical.Validate())
	assert.Error(t, DataFormat("xml").Validate())
}

func TestDatasetsSetupLoad(t *testing.T) {
	confDir := t.TempDir()
	dataDir := t.TempDir()
	writeDatasetConf(t, confDir, "novels.json", fmt.Sprintf(
		`{"id": "novels", "fullName": "Web novels", "format": "jsonl", "dataDir": "%s", "filePattern": "*.jsonl"}`,
		dataDir,
	))
	writeDatasetConf(t, confDir, "broken.json", `{"id": "broken", "format": "no-such-format"}`)
	writeDatasetConf(t, confDir, "garbage.json", `{{{`)

	setup := &DatasetsSetup{ConfDir: confDir}
	assert.NoError(t, setup.Load())
	assert.Equal(t, 1, len(setup.GetAllDatasets()))
	assert.Equal(t, "novels", setup.Get("novels").ID)
	assert.True(t, setup.Get("unknown").IsZero())
}

func TestDatasetValidateVerticalRequiresSetup(t *testing.T) {
	ds := Dataset{ID: "v1", Format: FormatVertical, DataDir: t.TempDir()}
	assert.Error(t, ds.Validate())
	ds.Vertical = &VerticalSetup{LemmaColIdx: 1, PosColIdx: 2, SentStruct: "s"}
	assert.NoError(t, ds.Validate())
}

func TestDatasetListFiles(t *testing.T) {
	dataDir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.jsonl", "notes.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte("{}"), 0644))
	}
	ds := Dataset{ID: "novels", Format: FormatJSONL, DataDir: dataDir, FilePattern: "*.jsonl"}
	files, err := ds.ListFiles()
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dataDir, "a.jsonl"),
		filepath.Join(dataDir, "b.jsonl"),
	}, files)
}

func TestDatasetListFilesDefaultPattern(t *testing.T) {
	dataDir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dataDir, "data.jsonl"), []byte("{}"), 0644))
	ds := Dataset{ID: "novels", Format: FormatJSONL, DataDir: dataDir}
	files, err := ds.ListFiles()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(files))
}
