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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableIdent(t *testing.T) {
	assert.Equal(t, "novels_2024", tableIdent("novels_2024"))
	assert.Equal(t, "my_dataset_v2", tableIdent("my-dataset.v2"))
	assert.Equal(t, "a_b_c", tableIdent("a b;c"))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "novels_word", wordTable("novels"))
	assert.Equal(t, "novels_inflection", inflectionTable("novels"))
}
