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

// Conf configures the asynchronous job subsystem
type Conf struct {
	MaxNumConcurrentJobs int `json:"maxNumConcurrentJobs"`

	// StatusDataPath specifies a file where unfinished job
	// statuses are stored during shutdown so they can be
	// restarted on the next run.
	StatusDataPath string `json:"statusDataPath"`
}

// GeneralJobInfo is a general job information and status
type GeneralJobInfo interface {

	// GetID should provide an unique identifier of the job
	GetID() string

	// GetType returns a speaking name of the job type (e.g. 'freqlist-generating')
	GetType() string

	// GetStartDT provides a datetime information when the job started
	GetStartDT() JSONTime

	// GetNumRestarts provides how many times the job was restarted
	// (typically after a service restart)
	GetNumRestarts() int

	// GetCorpus provides an identifier of a dataset the job works with
	GetCorpus() string

	// AsFinished returns a clone of the status with
	// the finished flag set and update time bumped
	AsFinished() GeneralJobInfo

	IsFinished() bool

	// CompactVersion produces a simplified and unified version of the job status
	CompactVersion() JobInfoCompact

	// FullInfo produces JSON-friendly full status information
	FullInfo() any

	GetError() error

	// WithError creates a clone of the status with the provided error set
	// and with the finished flag set
	WithError(err error) GeneralJobInfo
}

// JobInfoCompact is a simplified and unified version of
// any job information
type JobInfoCompact struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	CorpusID string   `json:"corpusId"`
	Start    JSONTime `json:"start"`
	Update   JSONTime `json:"update"`
	Finished bool     `json:"finished"`
	OK       bool     `json:"ok"`
}

// ErrorToString converts an error to a string
// (with nil translated to an empty string)
func ErrorToString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
