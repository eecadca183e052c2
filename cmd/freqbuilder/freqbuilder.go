// Copyright 2024 Martin Zimandl <martin.zimandl@gmail.com>
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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"tango/cnf"
	"tango/db/mysql"
	"tango/freqlist"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func runBuild(confPath, datasetID string, numWorkers int, noDB bool) error {
	conf := cnf.LoadConfig(confPath)
	logging.SetupLogging(conf.Logging)
	if err := conf.DatasetsSetup.Load(); err != nil {
		return fmt.Errorf("failed to load dataset configs: %w", err)
	}
	cnf.ApplyDefaults(conf)

	dataset := conf.DatasetsSetup.Get(datasetID)
	if dataset.IsZero() {
		return fmt.Errorf("unknown dataset %s", datasetID)
	}
	files, err := dataset.ListFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("dataset %s has no data files", datasetID)
	}

	var flDB *mysql.Adapter
	if !noDB {
		var err error
		flDB, err = mysql.OpenImportTunedDB(*conf.FreqList.DB)
		if err != nil {
			return err
		}
		defer flDB.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if numWorkers == 0 {
		numWorkers = conf.FreqList.NumParallelDocs
	}
	return freqlist.BuildSync(
		ctx,
		flDB,
		conf.FreqList,
		freqlist.FreqBuildArgs{
			DatasetID:    dataset.ID,
			Files:        files,
			Format:       dataset.Format,
			Vertical:     dataset.Vertical,
			NumWorkers:   numWorkers,
			MaxNumErrors: conf.FreqList.VertMaxNumErrors,
		},
	)
}

func main() {
	numWorkers := flag.Int("num-workers", 0, "number of parallel workers (0 = use server configuration)")
	noDB := flag.Bool("no-db", false, "write the JSON export only, without storing results to the database")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "freqbuilder - build a frequency list out of a configured dataset\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\t%s [options] run [config.json] [datasetId]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "\t%s version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("freqbuilder %s\nbuild date: %s\nlast commit: %s\n", version, buildDate, gitCommit)
	case "run":
		if flag.NArg() < 3 {
			flag.Usage()
			os.Exit(1)
		}
		if err := runBuild(flag.Arg(1), flag.Arg(2), *numWorkers, *noDB); err != nil {
			log.Fatal().Err(err).Msg("build failed")
		}
		log.Info().Msg("build finished")
	default:
		flag.Usage()
		os.Exit(1)
	}
}
