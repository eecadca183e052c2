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
	"time"

	"tango/corpus"
	"tango/jobs"
)

type FreqBuildArgs struct {
	DatasetID    string                `json:"datasetId"`
	Files        []string              `json:"files"`
	Format       corpus.DataFormat     `json:"format"`
	Vertical     *corpus.VerticalSetup `json:"vertical,omitempty"`
	NumWorkers   int                   `json:"numWorkers"`
	MaxNumErrors int                   `json:"maxNumErrors"`
}

type freqBuildStatus struct {
	Datetime        time.Time
	DatasetID       string
	TotalFiles      int
	NumProcDocs     int
	NumSkippedDocs  int
	SubsetDocs      map[string]int
	NumSurfaceForms int
	NumInflections  int
	TablesReady     bool
	ExportPath      string
	Error           error
	ClientWarn      string
}

type FreqBuildJob struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	DatasetID   string          `json:"datasetId"`
	Start       jobs.JSONTime   `json:"start"`
	Update      jobs.JSONTime   `json:"update"`
	Finished    bool            `json:"finished"`
	Error       error           `json:"error,omitempty"`
	NumRestarts int             `json:"numRestarts"`
	Args        FreqBuildArgs   `json:"args"`
	Result      freqBuildStatus `json:"result"`
}

func (j FreqBuildJob) GetID() string {
	return j.ID
}

func (j FreqBuildJob) GetType() string {
	return j.Type
}

func (j FreqBuildJob) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j FreqBuildJob) GetNumRestarts() int {
	return j.NumRestarts
}

func (j FreqBuildJob) GetCorpus() string {
	return j.DatasetID
}

func (j FreqBuildJob) GetDatasetID() string {
	return j.DatasetID
}

func (j FreqBuildJob) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j FreqBuildJob) IsFinished() bool {
	return j.Finished
}

func (j FreqBuildJob) FullInfo() any {
	return struct {
		ID          string          `json:"id"`
		Type        string          `json:"type"`
		DatasetID   string          `json:"datasetId"`
		Start       jobs.JSONTime   `json:"start"`
		Update      jobs.JSONTime   `json:"update"`
		Finished    bool            `json:"finished"`
		Error       string          `json:"error,omitempty"`
		OK          bool            `json:"ok"`
		NumRestarts int             `json:"numRestarts"`
		Args        FreqBuildArgs   `json:"args"`
		Result      freqBuildStatus `json:"result"`
	}{
		ID:          j.ID,
		Type:        j.Type,
		DatasetID:   j.DatasetID,
		Start:       j.Start,
		Update:      j.Update,
		Finished:    j.Finished,
		Error:       jobs.ErrorToString(j.Error),
		OK:          j.Error == nil,
		NumRestarts: j.NumRestarts,
		Args:        j.Args,
		Result:      j.Result,
	}
}

func (j FreqBuildJob) CompactVersion() jobs.JobInfoCompact {
	item := jobs.JobInfoCompact{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.DatasetID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		OK:       true,
	}
	item.OK = j.Error == nil
	return item
}

func (j FreqBuildJob) GetError() error {
	return j.Error
}

func (j FreqBuildJob) WithError(err error) jobs.GeneralJobInfo {
	return &FreqBuildJob{
		ID:          j.ID,
		Type:        j.Type,
		DatasetID:   j.DatasetID,
		Start:       j.Start,
		Update:      jobs.JSONTime(time.Now()),
		Finished:    true,
		Error:       err,
		Result:      j.Result,
		NumRestarts: j.NumRestarts,
	}
}
