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
	"errors"
	"net/http"

	"tango/common"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type datasetListItem struct {
	Dataset
	NumFiles int `json:"numFiles"`
}

// Actions provides dataset registry related HTTP actions
type Actions struct {
	setup *DatasetsSetup
}

// DatasetList godoc
// @Summary      List configured datasets
// @Produce      json
// @Success      200 {array} corpus.Dataset
// @Router       /corpora [get]
func (a *Actions) DatasetList(ctx *gin.Context) {
	ans := common.MapSlice(
		a.setup.GetAllDatasets(),
		func(ds Dataset, _ int) datasetListItem {
			numFiles := 0
			if files, err := ds.ListFiles(); err == nil {
				numFiles = len(files)
			}
			return datasetListItem{Dataset: ds, NumFiles: numFiles}
		},
	)
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// DatasetInfo godoc
// @Summary      Get a single dataset configuration
// @Produce      json
// @Param        datasetId path string true "dataset ID"
// @Success      200 {object} corpus.Dataset
// @Router       /corpora/{datasetId} [get]
func (a *Actions) DatasetInfo(ctx *gin.Context) {
	ds := a.setup.Get(ctx.Param("datasetId"))
	if ds.IsZero() {
		uniresp.RespondWithErrorJSON(ctx, errors.New("unknown dataset"), http.StatusNotFound)
		return
	}
	numFiles := 0
	if files, err := ds.ListFiles(); err == nil {
		numFiles = len(files)
	}
	uniresp.WriteJSONResponse(ctx.Writer, datasetListItem{Dataset: ds, NumFiles: numFiles})
}

// NewActions is the default factory
func NewActions(setup *DatasetsSetup) *Actions {
	return &Actions{setup: setup}
}
