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

	"github.com/czcorpus/vert-tagextract/v3/db"
)

// Conf configures frequency list building, storage and export.
type Conf struct {

	// DB specifies a database where the built frequency
	// lists are stored for searching.
	DB *db.Conf `json:"db"`

	// ExportDirPath is a directory where JSON exports of
	// the built lists are written.
	ExportDirPath string `json:"exportDirPath"`

	// VertMaxNumErrors specifies how many parsing errors
	// we tolerate when processing a vertical file dataset.
	VertMaxNumErrors int `json:"vertMaxNumErrors"`

	// NumParallelDocs specifies the number of workers
	// analyzing documents concurrently. If zero, the
	// number of CPUs is used.
	NumParallelDocs int `json:"numParallelDocs"`
}

func (conf *Conf) Validate() error {
	if conf == nil {
		return fmt.Errorf("missing `freqList` section")
	}
	if conf.DB == nil {
		return fmt.Errorf("missing `freqList.db` configuration")
	}
	if conf.ExportDirPath == "" {
		return fmt.Errorf("missing `freqList.exportDirPath` configuration")
	}
	return nil
}
