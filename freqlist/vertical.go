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
	"fmt"
	"time"

	"tango/morph"

	"github.com/czcorpus/vert-tagextract/v3/proc"
	"github.com/rs/zerolog/log"
	"github.com/tomachalek/vertigo/v6"
)

var ErrorTooManyParsingErrors = errors.New("too many parsing errors")

// freqExtractor is a vertigo.LineProcessor collecting frequencies
// from a vertical file where tokens come already annotated with
// their lemma and part of speech. Inflection merging is applied
// per sentence as delimited by the configured structure.
type freqExtractor struct {
	ctx          context.Context
	conf         FreqBuildArgs
	currSentence []morph.Token
	freqList     *FrequencyList
	lineCounter  int
	sentCounter  int
	errorCounter int
	maxNumErrors int
	statusChan   chan<- freqBuildStatus
}

func (fex *freqExtractor) handleProcError(lineNum int, err error) error {
	fex.statusChan <- freqBuildStatus{
		Datetime:    time.Now(),
		DatasetID:   fex.conf.DatasetID,
		NumProcDocs: fex.sentCounter,
		ClientWarn:  err.Error(),
	}
	log.Error().Err(err).Int("lineNumber", lineNum).Msg("parsing error")
	fex.errorCounter++
	if fex.errorCounter > fex.maxNumErrors {
		return ErrorTooManyParsingErrors
	}
	return nil
}

func (fex *freqExtractor) flushSentence() {
	if len(fex.currSentence) == 0 {
		return
	}
	merged, inflections := morph.MergeInflections(fex.currSentence)
	for _, tk := range merged {
		fex.freqList.AddToken(tk)
	}
	fex.freqList.AddInflections(inflections)
	fex.currSentence = fex.currSentence[:0]
	fex.sentCounter++
}

func (fex *freqExtractor) ProcStruct(st *vertigo.Structure, line int, err error) error {
	select {
	case s := <-fex.ctx.Done():
		return fmt.Errorf("received stop signal: %s", s)
	default:
	}
	if err != nil { // error from the Vertigo parser
		return fex.handleProcError(line, err)
	}
	fex.lineCounter = line
	if st.Name == fex.conf.Vertical.SentStruct {
		fex.flushSentence()
	}
	return nil
}

func (fex *freqExtractor) ProcStructClose(st *vertigo.StructureClose, line int, err error) error {
	select {
	case s := <-fex.ctx.Done():
		return fmt.Errorf("received stop signal: %s", s)
	default:
	}
	if err != nil { // error from the Vertigo parser
		return fex.handleProcError(line, err)
	}
	if st.Name == fex.conf.Vertical.SentStruct {
		fex.flushSentence()
	}
	return nil
}

// ProcToken is a part of vertigo.LineProcessor implementation.
// It is called by Vertigo parser when a token line is encountered.
func (fex *freqExtractor) ProcToken(tk *vertigo.Token, line int, err error) error {
	if err != nil {
		return fex.handleProcError(line, err)
	}
	fex.lineCounter = line
	fex.currSentence = append(fex.currSentence, morph.Token{
		Surface:  morph.Normalize(tk.PosAttrByIndex(fex.conf.Vertical.WordColIdx)),
		DictForm: morph.Normalize(tk.PosAttrByIndex(fex.conf.Vertical.LemmaColIdx)),
		PoS:      tk.PosAttrByIndex(fex.conf.Vertical.PosColIdx),
	})
	if line%100000 == 0 {
		fex.statusChan <- freqBuildStatus{
			Datetime:    time.Now(),
			DatasetID:   fex.conf.DatasetID,
			NumProcDocs: fex.sentCounter,
		}
	}
	return nil
}

func newFreqExtractor(
	ctx context.Context,
	args FreqBuildArgs,
	statusChan chan<- freqBuildStatus,
) *freqExtractor {
	return &freqExtractor{
		ctx:          ctx,
		conf:         args,
		freqList:     NewFrequencyList(),
		maxNumErrors: args.MaxNumErrors,
		statusChan:   statusChan,
	}
}

func analyzeVerticalFiles(
	ctx context.Context,
	args FreqBuildArgs,
	baseStatus freqBuildStatus,
	jobStatus chan<- freqBuildStatus,
) (*FrequencyList, freqBuildStatus, error) {
	if args.Vertical == nil {
		return nil, baseStatus, fmt.Errorf("missing vertical file setup for dataset %s", args.DatasetID)
	}
	parserConf := &vertigo.ParserConf{
		StructAttrAccumulator: "nil",
		Encoding:              "utf-8",
		LogProgressEachNth:    1000000,
	}
	vertScanner, err := proc.NewMultiFileScanner(args.Files...)
	if err != nil {
		return nil, baseStatus, fmt.Errorf("failed to open vertical files: %w", err)
	}
	defer vertScanner.Close()
	fex := newFreqExtractor(ctx, args, jobStatus)
	if err := vertigo.ParseVerticalFromScanner(ctx, vertScanner, parserConf, fex); err != nil {
		return nil, baseStatus, err
	}
	fex.flushSentence()
	status := baseStatus
	status.Datetime = time.Now()
	status.NumProcDocs = fex.sentCounter
	return fex.freqList, status, nil
}
