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
package library

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/ffactors/famafrench"
)

var ErrRunNotFound = errors.New("run not found")

type Library struct {
	DBUrl string

	Pool *pgxpool.Pool
}

// Connect to the database configured for the library
func (myLibrary *Library) Connect(ctx context.Context) error {
	if myLibrary.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, myLibrary.DBUrl)
	if err != nil {
		return err
	}
	myLibrary.Pool = pool

	return nil
}

// Close the database pool
func (myLibrary *Library) Close() {
	if myLibrary.Pool != nil {
		myLibrary.Pool.Close()
	}
}

// New connects to the library stored at dbURL
func New(ctx context.Context, dbURL string) (*Library, error) {
	myLibrary := &Library{DBUrl: dbURL}
	if err := myLibrary.Connect(ctx); err != nil {
		return nil, err
	}
	return myLibrary, nil
}

// SaveRun stores a run and its output tables in a single transaction
func (myLibrary *Library) SaveRun(ctx context.Context, run *Run, out *famafrench.Outputs) error {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			if !errors.Is(err, pgx.ErrTxClosed) {
				log.Error().Err(err).Msg("error rollingback tx")
			}
		}
	}()

	runID := pgtype.UUID{Bytes: run.ID, Valid: true}

	if _, err := tx.Exec(ctx, `INSERT INTO ff_runs
("id", "version", "start_time", "end_time", "first_month", "last_month", "num_months",
 "num_linked", "num_assigned", "reference_exchange", "created_by")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`, runID, run.Version, run.StartTime,
		run.EndTime, nullableDate(run.FirstMonth), nullableDate(run.LastMonth), run.NumMonths,
		run.NumLinked, run.NumAssigned, run.ReferenceExchange, run.CreatedBy); err != nil {
		return err
	}

	factorRows := make([][]any, len(out.Factors))
	for idx, factor := range out.Factors {
		factorRows[idx] = []any{runID, factor.Date, nullable(factor.SMB), nullable(factor.HML)}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"ff_factors"},
		[]string{"run_id", "event_date", "smb", "hml"}, pgx.CopyFromRows(factorRows)); err != nil {
		return err
	}

	countRows := make([][]any, len(out.FactorCounts))
	for idx, fc := range out.FactorCounts {
		countRows[idx] = []any{runID, fc.Date, fc.SMB, fc.HML, fc.Total}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"ff_nfirms"},
		[]string{"run_id", "event_date", "smb", "hml", "total"}, pgx.CopyFromRows(countRows)); err != nil {
		return err
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"ff_portfolios"},
		[]string{"run_id", "event_date", "size_code", "value_code", "vwret", "n_firms"},
		pgx.CopyFromRows(portfolioRows(runID, out))); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	run.Library = myLibrary

	log.Info().Str("RunID", run.ID.String()).Int("NumMonths", len(out.Factors)).Msg("saved run to library")

	return nil
}

// portfolioRows pairs every portfolio return with its firm count
func portfolioRows(runID pgtype.UUID, out *famafrench.Outputs) [][]any {
	type portfolioKey struct {
		date time.Time
		code string
	}

	counts := make(map[portfolioKey]int, len(out.PortfolioCounts))
	for _, pc := range out.PortfolioCounts {
		counts[portfolioKey{pc.Date, pc.Code()}] = pc.NFirms
	}

	rows := make([][]any, len(out.PortfolioReturns))
	for idx, pr := range out.PortfolioReturns {
		rows[idx] = []any{runID, pr.Date, string(pr.Size), string(pr.Value), nullable(pr.VWRet),
			counts[portfolioKey{pr.Date, pr.Code()}]}
	}
	return rows
}

const runColumns = `id, version, start_time, end_time,
coalesce(first_month, '0001-01-01'::date) as first_month,
coalesce(last_month, '0001-01-01'::date) as last_month,
num_months, num_linked, num_assigned, reference_exchange, created_on, created_by`

// Runs returns every run in the library, most recent first
func (myLibrary *Library) Runs(ctx context.Context) ([]*Run, error) {
	var runs []*Run
	err := pgxscan.Select(ctx, myLibrary.Pool, &runs,
		`SELECT `+runColumns+` FROM ff_runs ORDER BY end_time DESC`)
	for _, run := range runs {
		run.Library = myLibrary
	}
	return runs, err
}

// RunFromID fetches the run whose id starts with prefix
func (myLibrary *Library) RunFromID(ctx context.Context, prefix string) (*Run, error) {
	var runs []*Run
	if err := pgxscan.Select(ctx, myLibrary.Pool, &runs,
		`SELECT `+runColumns+` FROM ff_runs WHERE id::text LIKE $1 || '%' ORDER BY end_time DESC LIMIT 1`, prefix); err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}

	runs[0].Library = myLibrary
	return runs[0], nil
}

// LatestRun returns the most recently completed run
func (myLibrary *Library) LatestRun(ctx context.Context) (*Run, error) {
	return myLibrary.RunFromID(ctx, "")
}

type factorRow struct {
	EventDate time.Time
	SMB       *float64 `db:"smb"`
	HML       *float64 `db:"hml"`
}

// Factors returns the factor series of a run ordered by date
func (myLibrary *Library) Factors(ctx context.Context, run *Run) ([]famafrench.Factor, error) {
	var rows []*factorRow
	if err := pgxscan.Select(ctx, myLibrary.Pool, &rows,
		`SELECT event_date, smb, hml FROM ff_factors WHERE run_id=$1 ORDER BY event_date`,
		pgtype.UUID{Bytes: run.ID, Valid: true}); err != nil {
		return nil, err
	}

	factors := make([]famafrench.Factor, len(rows))
	for idx, row := range rows {
		factors[idx] = famafrench.Factor{
			Date: row.EventDate,
			SMB:  orNaN(row.SMB),
			HML:  orNaN(row.HML),
		}
	}
	return factors, nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
