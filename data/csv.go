// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
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
package data

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
)

func readCSV[T any](ctx context.Context, table, fn string) ([]T, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	// gocsv silently skips unknown headers, so required columns are
	// checked against the header line first
	header, err := csv.NewReader(fh).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Table: table, Reason: "missing header"}
		}
		return nil, &SchemaError{Table: table, Reason: err.Error()}
	}

	if err := checkCSVHeader[T](table, header); err != nil {
		return nil, err
	}

	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	rows := []T{}
	if err := gocsv.UnmarshalFile(fh, &rows); err != nil {
		return nil, &SchemaError{Table: table, Reason: err.Error()}
	}

	zerolog.Ctx(ctx).Debug().Str("Table", table).Str("FileName", fn).Int("NumRecords", len(rows)).Msg("csv read finished")

	return rows, nil
}

func writeCSV[T any](ctx context.Context, fn string, rows []T) error {
	fh, err := os.Create(fn)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return err
	}
	defer fh.Close()

	if err := gocsv.MarshalFile(&rows, fh); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("FileName", fn).Int("NumRecords", len(rows)).Msg("csv write finished")
	return nil
}
