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
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
)

// exportFilePath returns the path of the dataset's JSON export.
func exportFilePath(exportDir, datasetID string) string {
	return filepath.Join(exportDir, fmt.Sprintf("%s.json", tableIdent(datasetID)))
}

// writeExport serializes a frequency list into the dataset's JSON
// export file. The encoder sorts mapping keys so repeated exports
// of the same data are byte-identical.
func writeExport(exportDir, datasetID string, fl *FrequencyList) (string, error) {
	isDir, err := fs.IsDir(exportDir)
	if err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if !isDir {
		return "", fmt.Errorf("failed to write export: %s is not a directory", exportDir)
	}
	targetPath := exportFilePath(exportDir, datasetID)
	f, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriterSize(f, 1<<20)
	if err := json.NewEncoder(w).Encode(fl); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return targetPath, nil
}

// LoadExport reads a previously exported frequency list back and
// validates its schema.
func LoadExport(exportDir, datasetID string) (*FrequencyList, error) {
	targetPath := exportFilePath(exportDir, datasetID)
	isFile, err := fs.IsFile(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	if !isFile {
		return nil, fmt.Errorf("failed to load export: %s not found", targetPath)
	}
	raw, err := os.ReadFile(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	var fl FrequencyList
	if err := sonic.Unmarshal(raw, &fl); err != nil {
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	if err := fl.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	return &fl, nil
}
