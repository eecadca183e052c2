// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
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
	"sort"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	FormatJSONL    DataFormat = "jsonl"
	FormatVertical DataFormat = "vertical"
)

// DataFormat specifies how source files of a dataset are encoded -
// either as JSON lines with raw documents or as a pre-analyzed
// vertical file.
type DataFormat string

func (df DataFormat) Validate() error {
	if df != FormatJSONL && df != FormatVertical {
		return fmt.Errorf("unknown dataset format: %s", df)
	}
	return nil
}

// VerticalSetup configures positional attributes of a vertical file
type VerticalSetup struct {
	WordColIdx  int    `json:"wordColIdx"`
	LemmaColIdx int    `json:"lemmaColIdx"`
	PosColIdx   int    `json:"posColIdx"`
	SentStruct  string `json:"sentStruct"`
}

// Dataset describes a single source corpus TANGO can process.
type Dataset struct {
	ID          string         `json:"id"`
	FullName    string         `json:"fullName"`
	Description string         `json:"description"`
	Format      DataFormat     `json:"format"`
	DataDir     string         `json:"dataDir"`
	FilePattern string         `json:"filePattern"`
	Vertical    *VerticalSetup `json:"vertical"`
}

func (ds Dataset) IsZero() bool {
	return ds.ID == ""
}

func (ds Dataset) Validate() error {
	if err := ds.Format.Validate(); err != nil {
		return err
	}
	if ds.Format == FormatVertical && ds.Vertical == nil {
		return fmt.Errorf("dataset %s: vertical format requires the vertical column setup", ds.ID)
	}
	isDir, err := fs.IsDir(ds.DataDir)
	if err != nil {
		return fmt.Errorf("dataset %s: failed to test data dir: %w", ds.ID, err)
	}
	if !isDir {
		return fmt.Errorf("dataset %s: data dir %s not found", ds.ID, ds.DataDir)
	}
	return nil
}

// ListFiles returns all the source data files of the dataset
// sorted by name. The pattern defaults to * (i.e. anything
// within the data directory).
func (ds Dataset) ListFiles() ([]string, error) {
	ptrn := ds.FilePattern
	if ptrn == "" {
		ptrn = "*"
	}
	ans, err := filepath.Glob(filepath.Join(ds.DataDir, ptrn))
	if err != nil {
		return nil, fmt.Errorf("failed to list files of dataset %s: %w", ds.ID, err)
	}
	sort.Strings(ans)
	return ans, nil
}

// DatasetsSetup defines TANGO configuration related to source corpora.
// Each dataset is described by a standalone JSON file in ConfDir.
type DatasetsSetup struct {
	ConfDir  string `json:"confFilesDir"`
	datasets []Dataset
}

func (dss *DatasetsSetup) Load() error {
	files, err := os.ReadDir(dss.ConfDir)
	if err != nil {
		return fmt.Errorf("failed to load dataset configs: %w", err)
	}
	for _, f := range files {
		confPath := filepath.Join(dss.ConfDir, f.Name())
		tmp, err := os.ReadFile(confPath)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid dataset configuration file, skipping")
			continue
		}
		var conf Dataset
		err = sonic.Unmarshal(tmp, &conf)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid dataset configuration file, skipping")
			continue
		}
		if err := conf.Validate(); err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid dataset configuration, skipping")
			continue
		}
		dss.datasets = append(dss.datasets, conf)
		log.Info().Str("name", conf.ID).Msg("loaded dataset configuration file")
	}
	return nil
}

func (dss *DatasetsSetup) Get(name string) Dataset {
	for _, v := range dss.datasets {
		if v.ID == name {
			return v
		}
	}
	return Dataset{}
}

func (dss *DatasetsSetup) GetAllDatasets() []Dataset {
	return dss.datasets
}
