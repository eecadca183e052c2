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
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"tango/corpus"
	"tango/db/mysql"
	"tango/jobs"
	"tango/morph"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	jobTypeFreqList = "freqlist-generating"

	statusReportEachNthDoc = 5000

	maxNumJobRestarts = 2
)

// analyzeText runs the full analysis pipeline for the text of
// a single document and updates the provided partial list.
func analyzeText(analyzer morph.Analyzer, text string, fl *FrequencyList) {
	for _, segment := range morph.SplitSegments(morph.Normalize(text)) {
		merged, inflections := morph.MergeInflections(analyzer.Analyze(segment))
		for _, tk := range merged {
			fl.AddToken(tk)
		}
		fl.AddInflections(inflections)
	}
}

// analyzeJSONLFiles runs a bounded pool of workers over all the
// documents of the dataset. Each worker owns its analyzer instance
// and a partial frequency list so no locking is needed during the
// analysis itself.
func analyzeJSONLFiles(
	ctx context.Context,
	args FreqBuildArgs,
	baseStatus freqBuildStatus,
	jobStatus chan<- freqBuildStatus,
) (*FrequencyList, freqBuildStatus, error) {
	numWorkers := args.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	analyzers := make([]morph.Analyzer, numWorkers)
	for i := 0; i < numWorkers; i++ {
		analyzer, err := morph.NewKagomeAnalyzer()
		if err != nil {
			return nil, baseStatus, fmt.Errorf("failed to initialize analyzer: %w", err)
		}
		analyzers[i] = analyzer
	}

	docs := make(chan corpus.Document, 2*numWorkers)
	partials := make([]*FrequencyList, numWorkers)
	subsets := make([]map[string]int, numWorkers)
	var numProcDocs int64
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(widx int) {
			defer wg.Done()
			fl := NewFrequencyList()
			subsetDocs := make(map[string]int)
			for doc := range docs {
				analyzeText(analyzers[widx], doc.Text, fl)
				subsetDocs[doc.Subset]++
				numDone := atomic.AddInt64(&numProcDocs, 1)
				if numDone%statusReportEachNthDoc == 0 {
					upd := baseStatus
					upd.Datetime = time.Now()
					upd.NumProcDocs = int(numDone)
					jobStatus <- upd
				}
			}
			partials[widx] = fl
			subsets[widx] = subsetDocs
		}(i)
	}

	var numSkipped int
	var feedErr error
	for _, path := range args.Files {
		feedErr = corpus.EachDocument(ctx, path, func(doc corpus.Document, lineNum int) error {
			if strings.TrimSpace(doc.Text) == "" {
				numSkipped++
				return nil
			}
			docs <- doc
			return nil
		})
		if feedErr != nil {
			break
		}
	}
	close(docs)
	wg.Wait()
	if feedErr != nil {
		return nil, baseStatus, feedErr
	}

	total := NewFrequencyList()
	subsetDocs := make(map[string]int)
	for i := 0; i < numWorkers; i++ {
		total.MergeWith(partials[i])
		for k, v := range subsets[i] {
			subsetDocs[k] += v
		}
	}
	status := baseStatus
	status.Datetime = time.Now()
	status.NumProcDocs = int(numProcDocs)
	status.NumSkippedDocs = numSkipped
	status.SubsetDocs = subsetDocs
	return total, status, nil
}

// buildFrequencyListSync analyzes all the files of a dataset,
// stores the resulting list to the database and writes the JSON
// export. It reports its progress via jobStatus and expects a
// consumer on the other side for the whole time of the run.
func buildFrequencyListSync(
	ctx context.Context,
	dbAdapter *mysql.Adapter,
	conf *Conf,
	args FreqBuildArgs,
	jobStatus chan<- freqBuildStatus,
) {
	status := freqBuildStatus{
		Datetime:   time.Now(),
		DatasetID:  args.DatasetID,
		TotalFiles: len(args.Files),
	}

	var fl *FrequencyList
	var err error
	if args.Format == corpus.FormatVertical {
		fl, status, err = analyzeVerticalFiles(ctx, args, status, jobStatus)

	} else {
		fl, status, err = analyzeJSONLFiles(ctx, args, status, jobStatus)
	}
	if err != nil {
		status.Error = fmt.Errorf("failed to analyze dataset %s: %w", args.DatasetID, err)
		jobStatus <- status
		return
	}
	if err := fl.Validate(); err != nil {
		status.Error = err
		jobStatus <- status
		return
	}
	status.NumSurfaceForms = len(fl.Verbs)
	status.NumInflections = len(fl.Inflections)
	jobStatus <- status

	// a nil adapter means export-only mode (e.g. the command line builder
	// run with -no-db)
	if dbAdapter != nil {
		if err := createFreqTables(ctx, dbAdapter, args.DatasetID); err != nil {
			status.Error = err
			jobStatus <- status
			return
		}
		status.TablesReady = true
		jobStatus <- status
		if err := storeFrequencyList(ctx, dbAdapter, args.DatasetID, fl); err != nil {
			status.Error = err
			jobStatus <- status
			return
		}
	}

	exportPath, err := writeExport(conf.ExportDirPath, args.DatasetID, fl)
	if err != nil {
		status.Error = err
		jobStatus <- status
		return
	}
	status.ExportPath = exportPath
	status.Datetime = time.Now()
	jobStatus <- status
}

// BuildSync runs a complete build in the calling goroutine. It is
// used by the command line builder where no job scheduling applies.
func BuildSync(
	ctx context.Context,
	dbAdapter *mysql.Adapter,
	conf *Conf,
	args FreqBuildArgs,
) error {
	statusChan := make(chan freqBuildStatus)
	var lastStatus freqBuildStatus
	done := make(chan struct{})
	go func() {
		defer close(done)
		for statUpd := range statusChan {
			if statUpd.Error != nil {
				log.Error().
					Str("datasetId", statUpd.DatasetID).
					Err(statUpd.Error).
					Msg("failed to process frequency list build")

			} else {
				log.Info().
					Str("datasetId", statUpd.DatasetID).
					Int("numProcDocs", statUpd.NumProcDocs).
					Int("numSurfaceForms", statUpd.NumSurfaceForms).
					Msg("reporting build status")
			}
			lastStatus = statUpd
		}
	}()
	buildFrequencyListSync(ctx, dbAdapter, conf, args, statusChan)
	close(statusChan)
	<-done
	return lastStatus.Error
}

// RunJob enqueues an asynchronous frequency list build described
// by args and returns its initial state.
func (a *Actions) RunJob(args FreqBuildArgs) (FreqBuildJob, error) {
	jobID, err := uuid.NewUUID()
	if err != nil {
		return FreqBuildJob{}, err
	}
	initialStatus := FreqBuildJob{
		ID:        jobID.String(),
		Type:      jobTypeFreqList,
		DatasetID: args.DatasetID,
		Start:     jobs.CurrentDatetime(),
		Update:    jobs.CurrentDatetime(),
		Finished:  false,
		Args:      args,
	}
	fn := func(updateJobChan chan<- jobs.GeneralJobInfo) {
		statusChan := make(chan freqBuildStatus)
		ctx, cancel := context.WithCancel(context.Background())
		a.registerRunningJob(initialStatus.ID, cancel)
		defer a.forgetRunningJob(initialStatus.ID)
		go func(runStatus FreqBuildJob) {
			defer close(updateJobChan)
			for statUpd := range statusChan {
				if statUpd.ClientWarn != "" {
					log.Warn().
						Str("datasetId", statUpd.DatasetID).
						Int("numProcDocs", statUpd.NumProcDocs).
						Msg(statUpd.ClientWarn)

				} else if statUpd.Error != nil {
					log.Error().
						Str("datasetId", statUpd.DatasetID).
						Int("numProcDocs", statUpd.NumProcDocs).
						Err(statUpd.Error).
						Msg("failed to process frequency list job")

				} else {
					log.Info().
						Str("datasetId", statUpd.DatasetID).
						Int("numProcDocs", statUpd.NumProcDocs).
						Int("numSurfaceForms", statUpd.NumSurfaceForms).
						Msg("reporting job status")
				}

				runStatus.Result = statUpd
				runStatus.Error = statUpd.Error
				runStatus.Update = jobs.CurrentDatetime()
				updateJobChan <- runStatus
				if runStatus.Error != nil {
					runStatus.Finished = true
					cancel()
				}
			}
			runStatus.Update = jobs.CurrentDatetime()
			runStatus.Finished = true
			updateJobChan <- runStatus
		}(initialStatus)
		buildFrequencyListSync(ctx, a.db, a.conf, args, statusChan)
		close(statusChan)
	}
	a.jobActions.EnqueueJob(&fn, &initialStatus)
	return initialStatus, nil
}

// RestartJob re-enqueues a detached unfinished job loaded from
// the status data directory after a server restart.
func (a *Actions) RestartJob(jb *FreqBuildJob) error {
	if jb.NumRestarts >= maxNumJobRestarts {
		return fmt.Errorf("failed to restart job %s: too many restarts", jb.ID)
	}
	jb.NumRestarts++
	jb.Start = jobs.CurrentDatetime()
	jb.Update = jobs.CurrentDatetime()
	jb.Finished = false
	jb.Error = nil
	fnJob, err := a.RunJob(jb.Args)
	if err != nil {
		return err
	}
	log.Info().
		Str("origJobId", jb.ID).
		Str("newJobId", fnJob.ID).
		Str("datasetId", jb.DatasetID).
		Msg("restarted frequency list job")
	return nil
}
