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
package famafrench

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func compareSecurityMonth(a, b MarketEquity) int {
	if c := cmp.Compare(a.Permno, b.Permno); c != 0 {
		return c
	}
	return a.Date.Compare(b.Date)
}

// ComputeWeights walks the monthly history of every security and computes
// the value weight used for each month of the July-June holding year. It
// returns the weighted monthly panel and the June records that have a market
// equity for December of the previous year. Both are sorted by permno and
// date.
func ComputeWeights(ctx context.Context, cfg Config, months []MarketEquity) ([]WeightedMonth, []JuneRecord, error) {
	if !slices.IsSortedFunc(months, compareSecurityMonth) {
		months = slices.Clone(months)
		slices.SortFunc(months, compareSecurityMonth)
	}

	// each security occupies a contiguous run of rows
	var bounds [][2]int
	for start := 0; start < len(months); {
		end := start + 1
		for end < len(months) && months[end].Permno == months[start].Permno {
			end++
		}
		bounds = append(bounds, [2]int{start, end})
		start = end
	}

	weighted := make([]WeightedMonth, len(months))
	junes := make([][]JuneRecord, len(bounds))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.workers())

	for secIdx, bound := range bounds {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			junes[secIdx] = weightSecurity(months[bound[0]:bound[1]], weighted[bound[0]:bound[1]])
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	numJune := 0
	for _, jj := range junes {
		numJune += len(jj)
	}

	june := make([]JuneRecord, 0, numJune)
	for _, jj := range junes {
		june = append(june, jj...)
	}

	zerolog.Ctx(ctx).Debug().Int("NumSecurities", len(bounds)).Int("NumMonths", len(weighted)).
		Int("NumJune", len(june)).Msg("computed annual weights")

	return weighted, june, nil
}

// weightSecurity is a sequential scan over the months of a single security
// carrying the lag, cumulative return and December state forward. Results
// are written to out, which must be the same length as rows.
func weightSecurity(rows []MarketEquity, out []WeightedMonth) []JuneRecord {
	var (
		june   []JuneRecord
		cumret float64
		mebase float64
		year   = math.MinInt
		decME  = make(map[int]float64)
	)

	for idx := range rows {
		row := &rows[idx]
		wm := WeightedMonth{MarketEquity: *row}
		wm.FFYear, wm.FFMonth = formationYear(row.Date)

		if wm.FFYear != year {
			year = wm.FFYear
			cumret = 1
			mebase = math.NaN()
		}

		// missing returns are skipped by the running product but leave the
		// month itself undefined
		growth := 1 + row.Retx
		if math.IsNaN(growth) {
			wm.CumRetx = math.NaN()
		} else {
			cumret *= growth
			wm.CumRetx = cumret
		}

		if idx == 0 {
			wm.LagME = row.ME / growth
			wm.LagCumRetx = math.NaN()
		} else {
			wm.LagME = rows[idx-1].ME
			wm.LagCumRetx = out[idx-1].CumRetx
		}

		if wm.FFMonth == 1 {
			mebase = wm.LagME
			wm.Weight = wm.LagME
		} else {
			wm.Weight = mebase * wm.LagCumRetx
		}
		wm.MEBase = mebase

		out[idx] = wm

		switch row.Date.Month() {
		case 12:
			decME[row.Date.Year()] = row.ME
		case 6:
			if dec, ok := decME[row.Date.Year()-1]; ok {
				june = append(june, JuneRecord{WeightedMonth: wm, DecME: dec})
			}
		}
	}

	return june
}
