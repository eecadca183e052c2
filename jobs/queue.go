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
	"errors"
)

var (
	ErrorEmptyQueue = errors.New("empty queue")
)

// QueuedFunc is the actual work of a job. It must report its
// status updates to the provided channel and close the channel
// once there is nothing more to do.
type QueuedFunc = func(chan<- GeneralJobInfo)

type JobEntry struct {
	next         *JobEntry
	job          *QueuedFunc
	initialState GeneralJobInfo
}

// JobQueue is a simple FIFO of jobs waiting for a free
// worker slot. It is not safe for concurrent use, the
// synchronization is a responsibility of the owner.
type JobQueue struct {
	firstEntry *JobEntry
	lastEntry  *JobEntry
}

func (jq *JobQueue) Size() int {
	ans := 0
	for curr := jq.firstEntry; curr != nil; curr = curr.next {
		ans++
	}
	return ans
}

func (jq *JobQueue) Enqueue(item *QueuedFunc, initialState GeneralJobInfo) {
	entry := &JobEntry{
		job:          item,
		initialState: initialState,
	}
	if jq.firstEntry == nil {
		jq.firstEntry = entry
	}
	if jq.lastEntry == nil {
		jq.lastEntry = entry

	} else {
		jq.lastEntry.next = entry
	}
	jq.lastEntry = entry
}

// DelayNext moves the item currently at the front one position
// back. This is used when the front job still waits for its
// parent job(s) so the queue does not starve. For a single-item
// queue the function does nothing. In case the queue is empty,
// ErrorEmptyQueue is returned.
func (jq *JobQueue) DelayNext() error {
	if jq.firstEntry == nil {
		return ErrorEmptyQueue
	}
	first := jq.firstEntry
	if first.next == nil {
		return nil
	}
	second := first.next
	jq.firstEntry = second
	first.next = second.next
	second.next = first
	if first.next == nil {
		jq.lastEntry = first
	}
	return nil
}

func (jq *JobQueue) Dequeue() (*QueuedFunc, GeneralJobInfo, error) {
	ret := jq.firstEntry
	if ret == nil {
		return nil, nil, ErrorEmptyQueue
	}
	nxt := ret.next
	if nxt != nil {
		jq.firstEntry = nxt

	} else {
		jq.firstEntry = nil
		jq.lastEntry = nil
	}
	return ret.job, ret.initialState, nil
}

func (jq *JobQueue) PeekID() (string, error) {
	if jq.firstEntry == nil {
		return "", ErrorEmptyQueue
	}
	return jq.firstEntry.initialState.GetID(), nil
}
