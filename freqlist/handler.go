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
	"errors"
	"net/http"
	"sync"

	"tango/corpus"
	"tango/db/mysql"
	"tango/jobs"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Actions provides the frequency list HTTP API. It also owns the
// registry of cancel functions of currently running builds so the
// job API can interrupt them.
type Actions struct {
	ctx        context.Context
	conf       *Conf
	db         *mysql.Adapter
	datasets   *corpus.DatasetsSetup
	jobActions *jobs.Actions

	jobCancelMx sync.Mutex
	jobCancel   map[string]context.CancelFunc
}

func (a *Actions) registerRunningJob(jobID string, cancel context.CancelFunc) {
	a.jobCancelMx.Lock()
	defer a.jobCancelMx.Unlock()
	a.jobCancel[jobID] = cancel
}

func (a *Actions) forgetRunningJob(jobID string) {
	a.jobCancelMx.Lock()
	defer a.jobCancelMx.Unlock()
	delete(a.jobCancel, jobID)
}

func (a *Actions) cancelRunningJob(jobID string) bool {
	a.jobCancelMx.Lock()
	defer a.jobCancelMx.Unlock()
	cancel, ok := a.jobCancel[jobID]
	if ok {
		cancel()
	}
	return ok
}

// listenForJobStop consumes job stop requests (typically triggered
// via the job API's DELETE action) and cancels matching builds.
func (a *Actions) listenForJobStop(jobStopChannel <-chan string) {
	for {
		select {
		case <-a.ctx.Done():
			return
		case jobID, ok := <-jobStopChannel:
			if !ok {
				return
			}
			if a.cancelRunningJob(jobID) {
				log.Info().Str("jobId", jobID).Msg("interrupted frequency list job")

			} else {
				log.Warn().Str("jobId", jobID).Msg("cannot interrupt job - not running")
			}
		}
	}
}

// Build godoc
// @Summary      Start an asynchronous frequency list build for a dataset
// @Produce      json
// @Param        datasetId path string true "dataset identifier"
// @Param        numWorkers query int false "number of parallel workers" default(0)
// @Success      200 {object} FreqBuildJob
// @Router       /freqs/{datasetId}/build [post]
func (a *Actions) Build(ctx *gin.Context) {
	dataset := a.datasets.Get(ctx.Param("datasetId"))
	if dataset.IsZero() {
		uniresp.RespondWithErrorJSON(ctx, errors.New("unknown dataset"), http.StatusNotFound)
		return
	}
	numWorkers, ok := unireq.GetURLIntArgOrFail(ctx, "numWorkers", a.conf.NumParallelDocs)
	if !ok {
		return
	}
	files, err := dataset.ListFiles()
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	if len(files) == 0 {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("dataset has no data files"), http.StatusConflict)
		return
	}
	args := FreqBuildArgs{
		DatasetID:    dataset.ID,
		Files:        files,
		Format:       dataset.Format,
		Vertical:     dataset.Vertical,
		NumWorkers:   numWorkers,
		MaxNumErrors: a.conf.VertMaxNumErrors,
	}
	job, err := a.RunJob(args)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, job)
}

// Export godoc
// @Summary      Download the JSON export of a built frequency list
// @Produce      json
// @Param        datasetId path string true "dataset identifier"
// @Success      200 {object} FrequencyList
// @Router       /freqs/{datasetId}/export [get]
func (a *Actions) Export(ctx *gin.Context) {
	dataset := a.datasets.Get(ctx.Param("datasetId"))
	if dataset.IsZero() {
		uniresp.RespondWithErrorJSON(ctx, errors.New("unknown dataset"), http.StatusNotFound)
		return
	}
	fl, err := LoadExport(a.conf.ExportDirPath, dataset.ID)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, fl)
}

// SearchTerm godoc
// @Summary      Search stored surface forms by value or dictionary form
// @Produce      json
// @Param        datasetId path string true "dataset identifier"
// @Param        term path string true "searched term"
// @Param        limit query int false "max. number of matches" default(20)
// @Success      200 {array} SearchResult
// @Router       /freqs/{datasetId}/search/{term} [get]
func (a *Actions) SearchTerm(ctx *gin.Context) {
	dataset := a.datasets.Get(ctx.Param("datasetId"))
	if dataset.IsZero() {
		uniresp.RespondWithErrorJSON(ctx, errors.New("unknown dataset"), http.StatusNotFound)
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", 20)
	if !ok {
		return
	}
	exists, err := freqTablesExist(ctx, a.db, dataset.ID)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	if !exists {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("no frequency list built for the dataset"), http.StatusNotFound)
		return
	}
	ans, err := searchTerm(ctx, a.db, dataset.ID, ctx.Param("term"), limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// TopVerbs godoc
// @Summary      List most frequent stored surface forms of a dataset
// @Produce      json
// @Param        datasetId path string true "dataset identifier"
// @Param        limit query int false "max. number of items" default(20)
// @Success      200 {array} SearchResult
// @Router       /freqs/{datasetId}/top [get]
func (a *Actions) TopVerbs(ctx *gin.Context) {
	dataset := a.datasets.Get(ctx.Param("datasetId"))
	if dataset.IsZero() {
		uniresp.RespondWithErrorJSON(ctx, errors.New("unknown dataset"), http.StatusNotFound)
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", 20)
	if !ok {
		return
	}
	exists, err := freqTablesExist(ctx, a.db, dataset.ID)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	if !exists {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("no frequency list built for the dataset"), http.StatusNotFound)
		return
	}
	ans, err := topVerbs(ctx, a.db, dataset.ID, limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Inflections godoc
// @Summary      List stored inflection suffix counts of a dataset
// @Produce      json
// @Param        datasetId path string true "dataset identifier"
// @Param        limit query int false "max. number of items" default(50)
// @Success      200 {array} InflectionResult
// @Router       /freqs/{datasetId}/inflections [get]
func (a *Actions) Inflections(ctx *gin.Context) {
	dataset := a.datasets.Get(ctx.Param("datasetId"))
	if dataset.IsZero() {
		uniresp.RespondWithErrorJSON(ctx, errors.New("unknown dataset"), http.StatusNotFound)
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", 50)
	if !ok {
		return
	}
	exists, err := freqTablesExist(ctx, a.db, dataset.ID)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	if !exists {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("no frequency list built for the dataset"), http.StatusNotFound)
		return
	}
	ans, err := loadInflections(ctx, a.db, dataset.ID, limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func NewActions(
	ctx context.Context,
	conf *Conf,
	db *mysql.Adapter,
	datasets *corpus.DatasetsSetup,
	jobActions *jobs.Actions,
	jobStopChannel <-chan string,
) *Actions {
	ans := &Actions{
		ctx:        ctx,
		conf:       conf,
		db:         db,
		datasets:   datasets,
		jobActions: jobActions,
		jobCancel:  make(map[string]context.CancelFunc),
	}
	go ans.listenForJobStop(jobStopChannel)
	return ans
}
