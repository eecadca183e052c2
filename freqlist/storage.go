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
	"database/sql"
	"fmt"
	"strings"

	"tango/db/mysql"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const insertChunkSize = 500

// tableIdent converts a dataset identifier into a safe table name
// prefix. Anything outside of [a-zA-Z0-9_] is replaced by an
// underscore so the value can be interpolated into DDL/DML.
func tableIdent(datasetID string) string {
	var sb strings.Builder
	for _, c := range datasetID {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			sb.WriteRune(c)

		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func wordTable(datasetID string) string {
	return fmt.Sprintf("%s_word", tableIdent(datasetID))
}

func inflectionTable(datasetID string) string {
	return fmt.Sprintf("%s_inflection", tableIdent(datasetID))
}

// createFreqTables (re)creates the two tables a stored frequency
// list consists of. Any previously stored list of the dataset is
// dropped. The binary collation keeps distinct kana/kanji variants
// distinct also on the database side.
func createFreqTables(ctx context.Context, dbAdapter *mysql.Adapter, datasetID string) error {
	return dbAdapter.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(
			ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", wordTable(datasetID)),
		); err != nil {
			return fmt.Errorf("failed to create freq tables: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", inflectionTable(datasetID)),
		); err != nil {
			return fmt.Errorf("failed to create freq tables: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			fmt.Sprintf(
				"CREATE TABLE %s ( "+
					"value VARCHAR(80) NOT NULL, "+
					"dict_form VARCHAR(80) NOT NULL, "+
					"pos VARCHAR(40) NOT NULL, "+
					"frequency INT NOT NULL, "+
					"PRIMARY KEY (value) "+
					") COLLATE utf8mb4_bin",
				wordTable(datasetID),
			),
		); err != nil {
			return fmt.Errorf("failed to create freq tables: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			fmt.Sprintf(
				"CREATE TABLE %s ( "+
					"value VARCHAR(120) NOT NULL, "+
					"frequency INT NOT NULL, "+
					"PRIMARY KEY (value) "+
					") COLLATE utf8mb4_bin",
				inflectionTable(datasetID),
			),
		); err != nil {
			return fmt.Errorf("failed to create freq tables: %w", err)
		}
		return nil
	})
}

// freqTablesExist tests whether a frequency list has been stored
// for the dataset.
func freqTablesExist(ctx context.Context, dbAdapter *mysql.Adapter, datasetID string) (bool, error) {
	row := dbAdapter.DB().QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM information_schema.tables "+
			"WHERE table_schema = ? AND table_name IN (?, ?)",
		dbAdapter.DBName(), wordTable(datasetID), inflectionTable(datasetID),
	)
	var numTables int
	if err := row.Scan(&numTables); err != nil {
		return false, fmt.Errorf("failed to test freq tables: %w", err)
	}
	return numTables == 2, nil
}

// storeFrequencyList writes a built list into the dataset's tables
// using chunked multi-row inserts.
func storeFrequencyList(
	ctx context.Context,
	dbAdapter *mysql.Adapter,
	datasetID string,
	fl *FrequencyList,
) error {
	wordKeys := maps.Keys(fl.Verbs)
	slices.Sort(wordKeys)
	err := dbAdapter.WithTx(ctx, func(tx *sql.Tx) error {
		for i := 0; i < len(wordKeys); i += insertChunkSize {
			chunk := wordKeys[i:min(i+insertChunkSize, len(wordKeys))]
			placeholders := make([]string, len(chunk))
			params := make([]any, 0, 4*len(chunk))
			for j, k := range chunk {
				rec := fl.Verbs[k]
				placeholders[j] = "(?, ?, ?, ?)"
				params = append(params, k, rec.DictionaryForm, rec.PoS, rec.Frequency)
			}
			if _, err := tx.ExecContext(
				ctx,
				fmt.Sprintf(
					"INSERT INTO %s (value, dict_form, pos, frequency) VALUES %s",
					wordTable(datasetID), strings.Join(placeholders, ", "),
				),
				params...,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store frequency list: %w", err)
	}

	inflKeys := maps.Keys(fl.Inflections)
	slices.Sort(inflKeys)
	err = dbAdapter.WithTx(ctx, func(tx *sql.Tx) error {
		for i := 0; i < len(inflKeys); i += insertChunkSize {
			chunk := inflKeys[i:min(i+insertChunkSize, len(inflKeys))]
			placeholders := make([]string, len(chunk))
			params := make([]any, 0, 2*len(chunk))
			for j, k := range chunk {
				placeholders[j] = "(?, ?)"
				params = append(params, k, fl.Inflections[k])
			}
			if _, err := tx.ExecContext(
				ctx,
				fmt.Sprintf(
					"INSERT INTO %s (value, frequency) VALUES %s",
					inflectionTable(datasetID), strings.Join(placeholders, ", "),
				),
				params...,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store frequency list: %w", err)
	}
	return nil
}

// SearchResult is a single matching row of a term search.
type SearchResult struct {
	Value          string `json:"value"`
	DictionaryForm string `json:"dictionaryForm"`
	PoS            string `json:"pos"`
	Frequency      int    `json:"frequency"`
}

// searchTerm finds all the stored surface forms sharing their
// dictionary form with the searched term. An exact surface match
// is also returned even if its dictionary form differs.
func searchTerm(
	ctx context.Context,
	dbAdapter *mysql.Adapter,
	datasetID string,
	term string,
	limit int,
) ([]SearchResult, error) {
	rows, err := dbAdapter.DB().QueryContext(
		ctx,
		fmt.Sprintf(
			"SELECT value, dict_form, pos, frequency "+
				"FROM %s "+
				"WHERE value = ? OR dict_form = ? "+
				"ORDER BY frequency DESC, value "+
				"LIMIT ?",
			wordTable(datasetID),
		),
		term, term, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search term: %w", err)
	}
	defer rows.Close()
	ans := make([]SearchResult, 0, limit)
	for rows.Next() {
		var item SearchResult
		if err := rows.Scan(&item.Value, &item.DictionaryForm, &item.PoS, &item.Frequency); err != nil {
			return nil, fmt.Errorf("failed to search term: %w", err)
		}
		ans = append(ans, item)
	}
	return ans, nil
}

// topVerbs returns the most frequent stored surface forms.
func topVerbs(
	ctx context.Context,
	dbAdapter *mysql.Adapter,
	datasetID string,
	limit int,
) ([]SearchResult, error) {
	rows, err := dbAdapter.DB().QueryContext(
		ctx,
		fmt.Sprintf(
			"SELECT value, dict_form, pos, frequency "+
				"FROM %s "+
				"ORDER BY frequency DESC, value "+
				"LIMIT ?",
			wordTable(datasetID),
		),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load top verbs: %w", err)
	}
	defer rows.Close()
	ans := make([]SearchResult, 0, limit)
	for rows.Next() {
		var item SearchResult
		if err := rows.Scan(&item.Value, &item.DictionaryForm, &item.PoS, &item.Frequency); err != nil {
			return nil, fmt.Errorf("failed to load top verbs: %w", err)
		}
		ans = append(ans, item)
	}
	return ans, nil
}

// InflectionResult is a single stored inflection suffix count.
type InflectionResult struct {
	Value     string `json:"value"`
	Frequency int    `json:"frequency"`
}

// loadInflections returns inflection suffix counts of the dataset
// sorted by frequency.
func loadInflections(
	ctx context.Context,
	dbAdapter *mysql.Adapter,
	datasetID string,
	limit int,
) ([]InflectionResult, error) {
	rows, err := dbAdapter.DB().QueryContext(
		ctx,
		fmt.Sprintf(
			"SELECT value, frequency "+
				"FROM %s "+
				"ORDER BY frequency DESC, value "+
				"LIMIT ?",
			inflectionTable(datasetID),
		),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load inflections: %w", err)
	}
	defer rows.Close()
	ans := make([]InflectionResult, 0, limit)
	for rows.Next() {
		var item InflectionResult
		if err := rows.Scan(&item.Value, &item.Frequency); err != nil {
			return nil, fmt.Errorf("failed to load inflections: %w", err)
		}
		ans = append(ans, item)
	}
	return ans, nil
}
