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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetParallelism = 4

func readParquet[T any](ctx context.Context, table, fn string) ([]T, error) {
	logger := zerolog.Ctx(ctx)

	if err := checkParquetSchema[T](table, fn); err != nil {
		return nil, err
	}

	fr, err := local.NewLocalFileReader(fn)
	if err != nil {
		logger.Error().Err(err).Str("FileName", fn).Msg("cannot open local file")
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(T), parquetParallelism)
	if err != nil {
		return nil, fmt.Errorf("open parquet reader for %s: %w", table, err)
	}
	defer pr.ReadStop()

	rows := make([]T, pr.GetNumRows())
	if len(rows) == 0 {
		return rows, nil
	}

	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("read parquet table %s: %w", table, err)
	}

	logger.Debug().Str("Table", table).Str("FileName", fn).Int("NumRecords", len(rows)).Msg("parquet read finished")

	return rows, nil
}

func writeParquet[T any](ctx context.Context, fn string, rows []T) error {
	logger := zerolog.Ctx(ctx)

	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		logger.Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return err
	}
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, new(T), parquetParallelism)
	if err != nil {
		logger.Error().Str("OriginalError", err.Error()).Msg("parquet write failed")
		return err
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for idx := range rows {
		if err = pw.Write(rows[idx]); err != nil {
			logger.Error().Str("OriginalError", err.Error()).Str("FileName", fn).Int("Row", idx).
				Msg("parquet write failed for record")
			return err
		}
	}

	if err = pw.WriteStop(); err != nil {
		logger.Error().Err(err).Msg("parquet write failed")
		return err
	}

	logger.Info().Str("FileName", fn).Int("NumRecords", len(rows)).Msg("parquet write finished")
	return nil
}
