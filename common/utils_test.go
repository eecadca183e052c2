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

package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapContains(t *testing.T) {
	m := map[string]int{"a": 1}
	assert.True(t, MapContains(m, "a"))
	assert.False(t, MapContains(m, "b"))
	assert.False(t, MapContains[string, int](nil, "a"))
}

func TestMapSlice(t *testing.T) {
	ans := MapSlice([]int{3, 1, 4}, func(v int, i int) string {
		return fmt.Sprintf("%d:%d", i, v)
	})
	assert.Equal(t, []string{"0:3", "1:1", "2:4"}, ans)
}

func TestMapSliceEmpty(t *testing.T) {
	ans := MapSlice([]string{}, func(v string, i int) int { return i })
	assert.Equal(t, []int{}, ans)
}
