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
	"golang.org/x/sync/errgroup"

	"github.com/penny-vault/ffactors/famafrench"
)

// Load reads every row of a table. Required columns are validated before any
// row is decoded; violations are returned as *SchemaError.
func Load[T any](ctx context.Context, table, fn string, format Format) ([]T, error) {
	switch format {
	case FormatParquet:
		return readParquet[T](ctx, table, fn)
	case FormatCSV:
		return readCSV[T](ctx, table, fn)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes rows to fn, replacing any existing file
func Save[T any](ctx context.Context, fn string, format Format, rows []T) error {
	switch format {
	case FormatParquet:
		return writeParquet(ctx, fn, rows)
	case FormatCSV:
		return writeCSV(ctx, fn, rows)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// LoadInputs reads the fundamentals, security month and link tables from dir
// concurrently
func LoadInputs(ctx context.Context, dir string, format Format) (*famafrench.Inputs, error) {
	inputs := &famafrench.Inputs{}
	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		records, err := Load[FundamentalsRecord](grpCtx, FundamentalsTable, TablePath(dir, FundamentalsTable, format), format)
		if err != nil {
			return err
		}
		inputs.Fundamentals, err = ToFundamentals(records)
		return err
	})

	grp.Go(func() error {
		records, err := Load[SecurityMonthRecord](grpCtx, SecurityMonthsTable, TablePath(dir, SecurityMonthsTable, format), format)
		if err != nil {
			return err
		}
		inputs.Securities, err = ToSecurityMonths(records)
		return err
	})

	grp.Go(func() error {
		records, err := Load[LinkRecord](grpCtx, LinkTable, TablePath(dir, LinkTable, format), format)
		if err != nil {
			return err
		}
		inputs.Links, err = ToLinks(records)
		return err
	})

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("NumFundamentals", len(inputs.Fundamentals)).
		Int("NumSecurityMonths", len(inputs.Securities)).
		Int("NumLinks", len(inputs.Links)).
		Msg("loaded input tables")

	return inputs, nil
}

// SaveOutputs writes the four output tables to dir and returns the paths
// written
func SaveOutputs(ctx context.Context, dir string, format Format, out *famafrench.Outputs) ([]string, error) {
	files := []string{
		TablePath(dir, PortfolioReturnsTable, format),
		TablePath(dir, PortfolioCountsTable, format),
		TablePath(dir, FactorsTable, format),
		TablePath(dir, FactorCountsTable, format),
	}

	if err := Save(ctx, files[0], format, FromPortfolioReturns(out.PortfolioReturns)); err != nil {
		return nil, fmt.Errorf("save %s: %w", PortfolioReturnsTable, err)
	}
	if err := Save(ctx, files[1], format, FromPortfolioCounts(out.PortfolioCounts)); err != nil {
		return nil, fmt.Errorf("save %s: %w", PortfolioCountsTable, err)
	}
	if err := Save(ctx, files[2], format, FromFactors(out.Factors)); err != nil {
		return nil, fmt.Errorf("save %s: %w", FactorsTable, err)
	}
	if err := Save(ctx, files[3], format, FromFactorCounts(out.FactorCounts)); err != nil {
		return nil, fmt.Errorf("save %s: %w", FactorCountsTable, err)
	}

	return files, nil
}

// LoadFactors reads a factor table written by SaveOutputs
func LoadFactors(ctx context.Context, fn string, format Format) ([]famafrench.Factor, error) {
	records, err := Load[FactorRecord](ctx, FactorsTable, fn, format)
	if err != nil {
		return nil, err
	}
	return ToFactors(records)
}

// LoadReferenceFactors reads the published factor table
func LoadReferenceFactors(ctx context.Context, fn string, format Format) ([]famafrench.Factor, error) {
	records, err := Load[ReferenceFactorRecord](ctx, ReferenceFactorsTable, fn, format)
	if err != nil {
		return nil, err
	}
	return ReferenceToFactors(records)
}
