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
	"os/user"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/ffactors/data"
)

// Run is a factor construction stored in the library
type Run struct {
	ID      uuid.UUID
	Version string

	StartTime time.Time
	EndTime   time.Time

	FirstMonth time.Time
	LastMonth  time.Time

	NumMonths   int
	NumLinked   int
	NumAssigned int

	ReferenceExchange string

	CreatedOn time.Time
	CreatedBy string

	Library *Library `db:"-"`
}

// NewRun describes the run recorded by manifest
func NewRun(manifest *data.Manifest) *Run {
	run := &Run{
		ID:                manifest.RunID,
		Version:           manifest.Version,
		StartTime:         manifest.StartTime,
		EndTime:           manifest.EndTime,
		NumMonths:         manifest.Stats.NumMonths,
		NumLinked:         manifest.Stats.NumLinked,
		NumAssigned:       manifest.Stats.NumAssigned,
		ReferenceExchange: manifest.ReferenceExchange,
	}

	if first, err := time.Parse(data.DateLayout, manifest.FirstMonth); err == nil {
		run.FirstMonth = first
	}
	if last, err := time.Parse(data.DateLayout, manifest.LastMonth); err == nil {
		run.LastMonth = last
	}

	if current, err := user.Current(); err == nil {
		run.CreatedBy = current.Username
	}

	return run
}

// ShortID is the prefix used to refer to a run on the command line
func (run *Run) ShortID() string {
	return run.ID.String()[:6]
}

// Delete the run along with its factors and portfolios
func (run *Run) Delete(ctx context.Context) error {
	conn, err := run.Library.Pool.Acquire(ctx)
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

	// dependent tables cascade
	if _, err := tx.Exec(ctx, "DELETE FROM ff_runs WHERE id=$1", run.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
