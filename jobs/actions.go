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

package jobs

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"tango/common"
	"tango/mail"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dispatchCheckInterval = 5 * time.Second
)

// Actions schedules queued jobs with respect to the configured
// concurrency limit and provides HTTP handlers for job inspection.
type Actions struct {
	conf       *Conf
	mailConf   *mail.Conf
	lang       string
	ctx        context.Context
	msgPrinter *message.Printer
	jobStop    chan<- string

	mx            sync.Mutex
	jobList       map[string]GeneralJobInfo
	jobQueue      *JobQueue
	jobDeps       JobsDeps
	detachedJobs  map[string]GeneralJobInfo
	notifications map[string]map[string]bool
	numRunning    int

	checkTrigger chan struct{}
}

// EnqueueJob adds a job to the queue. The job will start
// as soon as a free worker slot is available.
func (a *Actions) EnqueueJob(fn *QueuedFunc, initialStatus GeneralJobInfo) {
	a.mx.Lock()
	a.jobList[initialStatus.GetID()] = initialStatus
	a.jobQueue.Enqueue(fn, initialStatus)
	a.mx.Unlock()
	a.triggerCheck()
}

// EqueueJobAfter adds a job which must wait until its parent
// job finishes. A failed parent makes the job fail too without
// even starting.
func (a *Actions) EqueueJobAfter(fn *QueuedFunc, initialStatus GeneralJobInfo, parentID string) {
	a.mx.Lock()
	if err := a.jobDeps.Add(initialStatus.GetID(), parentID); err != nil {
		log.Warn().
			Err(err).
			Str("jobId", initialStatus.GetID()).
			Str("parentId", parentID).
			Msg("failed to add job dependency, the job will run independently")
	}
	a.jobList[initialStatus.GetID()] = initialStatus
	a.jobQueue.Enqueue(fn, initialStatus)
	a.mx.Unlock()
	a.triggerCheck()
}

func (a *Actions) GetJob(jobID string) (GeneralJobInfo, bool) {
	a.mx.Lock()
	defer a.mx.Unlock()
	v, ok := a.jobList[jobID]
	return v, ok
}

// GetDetachedJobs lists jobs loaded from the status file
// of a previous run (i.e. jobs interrupted by a shutdown).
func (a *Actions) GetDetachedJobs() []GeneralJobInfo {
	a.mx.Lock()
	defer a.mx.Unlock()
	ans := make([]GeneralJobInfo, 0, len(a.detachedJobs))
	for _, v := range a.detachedJobs {
		ans = append(ans, v)
	}
	return ans
}

func (a *Actions) ClearDetachedJob(jobID string) bool {
	a.mx.Lock()
	defer a.mx.Unlock()
	_, ok := a.detachedJobs[jobID]
	delete(a.detachedJobs, jobID)
	return ok
}

func (a *Actions) triggerCheck() {
	select {
	case a.checkTrigger <- struct{}{}:
	default:
	}
}

func (a *Actions) dispatchLoop() {
	ticker := time.NewTicker(dispatchCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			a.storeUnfinishedJobs()
			return
		case <-a.checkTrigger:
		case <-ticker.C:
		}
		a.dispatchNext()
	}
}

func (a *Actions) dispatchNext() {
	a.mx.Lock()
	defer a.mx.Unlock()
	numTried := 0
	for a.numRunning < a.conf.MaxNumConcurrentJobs && numTried < a.jobQueue.Size() {
		numTried++
		currID, err := a.jobQueue.PeekID()
		if err == ErrorEmptyQueue {
			return
		}
		mustWait, err := a.jobDeps.MustWait(currID)
		if err == nil && mustWait {
			a.jobQueue.DelayNext()
			continue
		}
		fn, initialState, err := a.jobQueue.Dequeue()
		if err == ErrorEmptyQueue {
			return
		}
		hasFailedParent, err := a.jobDeps.HasFailedParent(currID)
		if err == nil && hasFailedParent {
			failed := initialState.WithError(fmt.Errorf("parent job failed"))
			a.jobList[currID] = failed
			a.jobDeps.SetParentFinished(currID, true)
			continue
		}
		a.numRunning++
		go a.runJob(fn, initialState)
	}
}

func (a *Actions) runJob(fn *QueuedFunc, initialState GeneralJobInfo) {
	updates := make(chan GeneralJobInfo, 10)
	go (*fn)(updates)
	lastState := initialState
	for upd := range updates {
		lastState = upd
		a.mx.Lock()
		a.jobList[upd.GetID()] = upd
		a.mx.Unlock()
	}
	if !lastState.IsFinished() {
		lastState = lastState.AsFinished()
	}
	a.mx.Lock()
	a.jobList[lastState.GetID()] = lastState
	a.jobDeps.SetParentFinished(lastState.GetID(), lastState.GetError() != nil)
	a.numRunning--
	a.mx.Unlock()
	log.Info().
		Str("jobId", lastState.GetID()).
		Str("jobType", lastState.GetType()).
		Err(lastState.GetError()).
		Msg("job finished")
	a.sendNotifications(lastState)
	a.triggerCheck()
}

func (a *Actions) sendNotifications(info GeneralJobInfo) {
	a.mx.Lock()
	addresses := make([]string, 0, len(a.notifications[info.GetID()]))
	for addr := range a.notifications[info.GetID()] {
		addresses = append(addresses, addr)
	}
	delete(a.notifications, info.GetID())
	a.mx.Unlock()
	if len(addresses) == 0 || a.mailConf == nil {
		return
	}
	sort.Strings(addresses)
	subject := a.msgPrinter.Sprintf("TANGO job notification")
	paragraphs := []string{
		extractJobDescription(a.msgPrinter, info),
		a.msgPrinter.Sprintf("Job ID: %s", info.GetID()),
		a.msgPrinter.Sprintf("Dataset: %s", info.GetCorpus()),
		a.msgPrinter.Sprintf("Started: %s", info.GetStartDT().Format(time.RFC3339)),
		localizedStatus(a.msgPrinter, info),
	}
	if err := mail.SendNotification(a.mailConf, a.lang, subject, paragraphs, addresses); err != nil {
		log.Error().Err(err).Str("jobId", info.GetID()).Msg("failed to send a job notification")
	}
}

// storeUnfinishedJobs serializes statuses of all the unfinished
// jobs so they can be restarted after the service starts again.
func (a *Actions) storeUnfinishedJobs() {
	if a.conf.StatusDataPath == "" {
		return
	}
	a.mx.Lock()
	data := make([]GeneralJobInfo, 0, len(a.jobList))
	for _, v := range a.jobList {
		if !v.IsFinished() {
			data = append(data, v)
		}
	}
	for _, v := range a.detachedJobs {
		if !v.IsFinished() {
			data = append(data, v)
		}
	}
	a.mx.Unlock()
	fw, err := os.Create(a.conf.StatusDataPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to store unfinished job statuses")
		return
	}
	defer fw.Close()
	if err := gob.NewEncoder(fw).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to store unfinished job statuses")
		return
	}
	log.Info().Int("numJobs", len(data)).Msg("stored statuses of unfinished jobs")
}

func (a *Actions) loadDetachedJobs() {
	if a.conf.StatusDataPath == "" {
		return
	}
	fr, err := os.Open(a.conf.StatusDataPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Msg("failed to load stored job statuses")
		}
		return
	}
	defer fr.Close()
	var data []GeneralJobInfo
	if err := gob.NewDecoder(fr).Decode(&data); err != nil {
		log.Error().Err(err).Msg("failed to decode stored job statuses")
		return
	}
	for _, v := range data {
		a.detachedJobs[v.GetID()] = v
	}
	if err := os.Remove(a.conf.StatusDataPath); err != nil {
		log.Warn().Err(err).Msg("failed to remove used job status file")
	}
	log.Info().Int("numJobs", len(data)).Msg("loaded detached job statuses from the previous run")
}

// ---- HTTP handlers

// JobList godoc
// @Summary      List jobs (both queued, running and finished)
// @Produce      json
// @Param        compact query int false "Provide a compact job info format" default(0)
// @Param        unfinishedOnly query int false "List only unfinished jobs" default(0)
// @Success      200 {array} any
// @Router       /jobs [get]
func (a *Actions) JobList(ctx *gin.Context) {
	compact := ctx.Request.URL.Query().Get("compact") == "1"
	unfinishedOnly := ctx.Request.URL.Query().Get("unfinishedOnly") == "1"
	a.mx.Lock()
	jobs := make([]GeneralJobInfo, 0, len(a.jobList))
	for _, v := range a.jobList {
		if unfinishedOnly && v.IsFinished() {
			continue
		}
		jobs = append(jobs, v)
	}
	a.mx.Unlock()
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[j].GetStartDT().Before(jobs[i].GetStartDT())
	})
	if compact {
		ans := make([]JobInfoCompact, len(jobs))
		for i, v := range jobs {
			ans[i] = v.CompactVersion()
		}
		uniresp.WriteJSONResponse(ctx.Writer, ans)
		return
	}
	ans := make([]any, len(jobs))
	for i, v := range jobs {
		ans[i] = v.FullInfo()
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Utilization godoc
// @Summary      Show job workers utilization
// @Produce      json
// @Success      200 {object} any
// @Router       /jobs/utilization [get]
func (a *Actions) Utilization(ctx *gin.Context) {
	a.mx.Lock()
	ans := struct {
		MaxNumConcurrentJobs int `json:"maxNumConcurrentJobs"`
		NumRunning           int `json:"numRunning"`
		NumQueued            int `json:"numQueued"`
	}{
		MaxNumConcurrentJobs: a.conf.MaxNumConcurrentJobs,
		NumRunning:           a.numRunning,
		NumQueued:            a.jobQueue.Size(),
	}
	a.mx.Unlock()
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// JobInfo godoc
// @Summary      Get a detailed information about a job
// @Produce      json
// @Param        jobId path string true "job ID"
// @Success      200 {object} any
// @Router       /jobs/{jobId} [get]
func (a *Actions) JobInfo(ctx *gin.Context) {
	job, ok := a.GetJob(ctx.Param("jobId"))
	if !ok {
		a.mx.Lock()
		job, ok = a.detachedJobs[ctx.Param("jobId")]
		a.mx.Unlock()
	}
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

// Delete godoc
// @Summary      Stop a running job and remove its status record
// @Produce      json
// @Param        jobId path string true "job ID"
// @Success      200 {object} any
// @Router       /jobs/{jobId} [delete]
func (a *Actions) Delete(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	job, ok := a.GetJob(jobID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	if !job.IsFinished() {
		select {
		case a.jobStop <- jobID:
		case <-time.After(2 * time.Second):
			log.Warn().Str("jobId", jobID).Msg("no listener accepted the job stop request")
		}
	}
	a.mx.Lock()
	delete(a.jobList, jobID)
	delete(a.notifications, jobID)
	a.mx.Unlock()
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

// ClearIfFinished godoc
// @Summary      Remove a job status record in case the job is finished
// @Produce      json
// @Param        jobId path string true "job ID"
// @Success      200 {object} any
// @Router       /jobs/{jobId}/clearIfFinished [get]
func (a *Actions) ClearIfFinished(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	job, ok := a.GetJob(jobID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	removed := false
	if job.IsFinished() {
		a.mx.Lock()
		delete(a.jobList, jobID)
		delete(a.notifications, jobID)
		a.mx.Unlock()
		removed = true
	}
	ans := struct {
		Removed bool `json:"removed"`
	}{Removed: removed}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// GetNotifications godoc
// @Summary      List e-mail addresses subscribed for a job notification
// @Produce      json
// @Param        jobId path string true "job ID"
// @Success      200 {array} string
// @Router       /jobs/{jobId}/emailNotification [get]
func (a *Actions) GetNotifications(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	if _, ok := a.GetJob(jobID); !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	a.mx.Lock()
	addresses := make([]string, 0, len(a.notifications[jobID]))
	for addr := range a.notifications[jobID] {
		addresses = append(addresses, addr)
	}
	a.mx.Unlock()
	sort.Strings(addresses)
	uniresp.WriteJSONResponse(ctx.Writer, addresses)
}

// CheckNotification godoc
// @Summary      Test whether an address is subscribed for a job notification
// @Produce      json
// @Param        jobId path string true "job ID"
// @Param        address path string true "e-mail address"
// @Success      200 {object} any
// @Router       /jobs/{jobId}/emailNotification/{address} [get]
func (a *Actions) CheckNotification(ctx *gin.Context) {
	a.mx.Lock()
	ok := common.MapContains(a.notifications[ctx.Param("jobId")], ctx.Param("address"))
	a.mx.Unlock()
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("notification not found"), http.StatusNotFound)
		return
	}
	ans := struct {
		Registered bool `json:"registered"`
	}{Registered: true}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// AddNotification godoc
// @Summary      Subscribe an e-mail address for a job finish notification
// @Produce      json
// @Param        jobId path string true "job ID"
// @Param        address path string true "e-mail address"
// @Success      200 {object} any
// @Router       /jobs/{jobId}/emailNotification/{address} [put]
func (a *Actions) AddNotification(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	address := ctx.Param("address")
	if !strings.Contains(address, "@") {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("invalid e-mail address"), http.StatusUnprocessableEntity)
		return
	}
	job, ok := a.GetJob(jobID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	if job.IsFinished() {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job already finished"), http.StatusConflict)
		return
	}
	a.mx.Lock()
	if _, ok := a.notifications[jobID]; !ok {
		a.notifications[jobID] = make(map[string]bool)
	}
	a.notifications[jobID][address] = true
	a.mx.Unlock()
	ans := struct {
		Registered bool `json:"registered"`
	}{Registered: true}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// RemoveNotification godoc
// @Summary      Unsubscribe an e-mail address from a job finish notification
// @Produce      json
// @Param        jobId path string true "job ID"
// @Param        address path string true "e-mail address"
// @Success      200 {object} any
// @Router       /jobs/{jobId}/emailNotification/{address} [delete]
func (a *Actions) RemoveNotification(ctx *gin.Context) {
	a.mx.Lock()
	ok := common.MapContains(a.notifications[ctx.Param("jobId")], ctx.Param("address"))
	delete(a.notifications[ctx.Param("jobId")], ctx.Param("address"))
	a.mx.Unlock()
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("notification not found"), http.StatusNotFound)
		return
	}
	ans := struct {
		Registered bool `json:"registered"`
	}{Registered: false}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// NewActions creates the job subsystem and starts its dispatching
// loop. The jobStopChannel is used to broadcast job stop requests
// to the components actually running the jobs.
func NewActions(
	conf *Conf,
	mailConf *mail.Conf,
	lang string,
	ctx context.Context,
	jobStopChannel chan<- string,
) *Actions {
	ans := &Actions{
		conf:          conf,
		mailConf:      mailConf,
		lang:          lang,
		ctx:           ctx,
		msgPrinter:    message.NewPrinter(language.Make(lang)),
		jobStop:       jobStopChannel,
		jobList:       make(map[string]GeneralJobInfo),
		jobQueue:      &JobQueue{},
		jobDeps:       make(JobsDeps),
		detachedJobs:  make(map[string]GeneralJobInfo),
		notifications: make(map[string]map[string]bool),
		checkTrigger:  make(chan struct{}, 1),
	}
	ans.loadDetachedJobs()
	go ans.dispatchLoop()
	return ans
}
