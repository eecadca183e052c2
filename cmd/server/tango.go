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

package main

import (
	"context"
	"encoding/gob"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tango/cnf"
	"tango/corpus"
	"tango/db/mysql"
	"tango/debug"
	"tango/docs"
	"tango/freqlist"
	"tango/general"
	"tango/jobs"
	"tango/root"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func init() {
	gob.Register(&freqlist.FreqBuildJob{})
	gob.Register(&jobs.DummyJobInfo{})
}

// @title           TANGO - Token Aggregator for Nihongo Grammar Observations
// @description     Builds Japanese word frequency lists with verb inflection statistics out of corpus data and serves them for search and export.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost
// @BasePath  /

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	version := general.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "TANGO - Token Aggregator for Nihongo Grammar Observations\n\nUsage:\n\t%s [options] start [config.json]\n\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("tango %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return

	} else if action != "start" {
		log.Fatal().Msgf("Unknown action %s", action)
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	logging.SetupLogging(conf.Logging)
	if err := conf.DatasetsSetup.Load(); err != nil {
		log.Fatal().
			Err(err).
			Str("targetDirectory", conf.DatasetsSetup.ConfDir).
			Msg("failed to load dataset configs")
	}
	log.Info().Msg("Starting TANGO")
	cnf.ApplyDefaults(conf)

	docs.SwaggerInfo.Version = version.Version
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", conf.ListenAddress, conf.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	flDB, err := mysql.OpenDB(*conf.FreqList.DB)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if conf.FreqList.DB.Type != "mysql" {
		log.Fatal().Msg("only mysql frequency list backend is supported")
	}
	log.Info().Msgf("frequency list SQL database: %s@%s", conf.FreqList.DB.Name, conf.FreqList.DB.Host)

	if !conf.Logging.Level.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	rootActions := root.Actions{Version: version, Conf: conf}

	jobStopChannel := make(chan string)
	jobActions := jobs.NewActions(conf.Jobs, conf.Mail, conf.Language, ctx, jobStopChannel)

	corpusActions := corpus.NewActions(conf.DatasetsSetup)
	freqlistActions := freqlist.NewActions(
		ctx,
		conf.FreqList,
		flDB,
		conf.DatasetsSetup,
		jobActions,
		jobStopChannel,
	)

	for _, dj := range jobActions.GetDetachedJobs() {
		if dj.IsFinished() {
			continue
		}
		switch tdj := dj.(type) {
		case *freqlist.FreqBuildJob:
			err := freqlistActions.RestartJob(tdj)
			if err != nil {
				log.Error().Err(err).Msgf("Failed to restart job %s. The job will be removed.", tdj.ID)
			}
			jobActions.ClearDetachedJob(tdj.ID)
		default:
			log.Error().Msg("unknown detached job type")
		}
	}

	engine.GET(
		"/", rootActions.RootAction)
	engine.GET(
		"/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET(
		"/corpora", corpusActions.DatasetList)
	engine.GET(
		"/corpora/:datasetId", corpusActions.DatasetInfo)

	engine.POST(
		"/freqs/:datasetId/build", freqlistActions.Build)
	engine.GET(
		"/freqs/:datasetId/export", freqlistActions.Export)
	engine.GET(
		"/freqs/:datasetId/search/:term", freqlistActions.SearchTerm)
	engine.GET(
		"/freqs/:datasetId/top", freqlistActions.TopVerbs)
	engine.GET(
		"/freqs/:datasetId/inflections", freqlistActions.Inflections)

	engine.GET(
		"/jobs", jobActions.JobList)
	engine.GET(
		"/jobs/utilization", jobActions.Utilization)
	engine.GET(
		"/jobs/:jobId", jobActions.JobInfo)
	engine.DELETE(
		"/jobs/:jobId", jobActions.Delete)
	engine.GET(
		"/jobs/:jobId/clearIfFinished", jobActions.ClearIfFinished)
	engine.GET(
		"/jobs/:jobId/emailNotification", jobActions.GetNotifications)
	engine.GET(
		"/jobs/:jobId/emailNotification/:address",
		jobActions.CheckNotification)
	engine.PUT(
		"/jobs/:jobId/emailNotification/:address",
		jobActions.AddNotification)
	engine.DELETE(
		"/jobs/:jobId/emailNotification/:address",
		jobActions.RemoveNotification)

	if conf.Logging.Level.IsDebugMode() {
		debugActions := debug.NewActions(jobActions)
		engine.POST("/debug/createJob", debugActions.CreateDummyJob)
		engine.POST("/debug/finishJob/:jobId", debugActions.FinishDummyJob)
	}

	log.Info().Msgf("starting to listen at %s:%d", conf.ListenAddress, conf.ListenPort)
	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ListenAddress, conf.ListenPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil {
			log.Error().Err(err).Send()
		}
	}()

	<-ctx.Done()
	log.Info().Err(err).Msg("Shutdown request error")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
}
