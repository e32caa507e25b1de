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
	"context"
	"math"
	"slices"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Eligible reports whether a security-year can be assigned to a portfolio
func Eligible(beme, me float64, count int) bool {
	return beme > 0 && me > 0 && count >= 1
}

// Breakpoints holds the breakpoints of every formation date
type Breakpoints struct {
	byMonth *haxmap.Map[int, Breakpoint]
}

// Get returns the breakpoints of a formation date. Dates without any eligible
// reference exchange security return NaN thresholds.
func (bps *Breakpoints) Get(date time.Time) Breakpoint {
	if bp, ok := bps.byMonth.Get(monthKey(date)); ok {
		return bp
	}
	return Breakpoint{
		Date:       date,
		SizeMedian: math.NaN(),
		BM30:       math.NaN(),
		BM70:       math.NaN(),
	}
}

// Len returns the number of formation dates with breakpoints
func (bps *Breakpoints) Len() int {
	return int(bps.byMonth.Len())
}

// Sorted returns all breakpoints ordered by formation date
func (bps *Breakpoints) Sorted() []Breakpoint {
	res := make([]Breakpoint, 0, bps.Len())
	bps.byMonth.ForEach(func(_ int, bp Breakpoint) bool {
		res = append(res, bp)
		return true
	})
	slices.SortFunc(res, func(a, b Breakpoint) int {
		return a.Date.Compare(b.Date)
	})
	return res
}

// ComputeBreakpoints computes, for every formation date, the median market
// equity and the 30th and 70th percentile of book-to-market over eligible
// securities listed on the reference exchange. Dates are computed
// concurrently; the call returns once all of them are complete.
func ComputeBreakpoints(ctx context.Context, cfg Config, linked []LinkedRecord) (*Breakpoints, error) {
	type sample struct {
		date time.Time
		me   []float64
		beme []float64
	}

	samples := make(map[int]*sample)
	for idx := range linked {
		rec := &linked[idx]
		if rec.PrimaryExch != cfg.ReferenceExchange || !Eligible(rec.BEME, rec.ME, rec.Count) {
			continue
		}

		key := monthKey(rec.Date)
		smp, ok := samples[key]
		if !ok {
			smp = &sample{date: rec.Date}
			samples[key] = smp
		}
		smp.me = append(smp.me, rec.ME)
		smp.beme = append(smp.beme, rec.BEME)
	}

	bps := &Breakpoints{
		byMonth: haxmap.New[int, Breakpoint](uintptr(max(len(samples), 1))),
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.workers())

	for key, smp := range samples {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			bps.byMonth.Set(key, Breakpoint{
				Date:       smp.date,
				SizeMedian: Quantile(smp.me, 0.5),
				BM30:       Quantile(smp.beme, 0.3),
				BM70:       Quantile(smp.beme, 0.7),
				NumFirms:   len(smp.me),
			})
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("NumFormationDates", bps.Len()).Msg("computed breakpoints")

	return bps, nil
}

// SizeBucket assigns the size code. A NaN market equity is not mapped to
// the empty code: the comparison fails and the security falls through to
// "B". Callers exclude such securities with Eligible beforehand.
func SizeBucket(me, median float64) SizeCode {
	if me <= median {
		return Small
	}
	return Big
}

// ValueBucket assigns the book-to-market code, or the empty code when beme
// is negative or any operand is NaN
func ValueBucket(beme, bm30, bm70 float64) ValueCode {
	switch {
	case 0 <= beme && beme <= bm30:
		return Low
	case beme <= bm70:
		return Medium
	case beme > bm70:
		return High
	}
	return ""
}

// AssignPortfolios applies the breakpoints of each formation date to every
// linked June record, whatever its exchange. Ineligible records get empty
// codes.
func AssignPortfolios(linked []LinkedRecord, bps *Breakpoints) []Assignment {
	res := make([]Assignment, len(linked))
	for idx := range linked {
		rec := &linked[idx]
		asgn := Assignment{
			Permno: rec.Permno,
			FFYear: rec.Date.Year(),
		}

		if Eligible(rec.BEME, rec.ME, rec.Count) {
			bp := bps.Get(rec.Date)
			asgn.Size = SizeBucket(rec.ME, bp.SizeMedian)
			asgn.Value = ValueBucket(rec.BEME, bp.BM30, bp.BM70)
		}

		res[idx] = asgn
	}
	return res
}

// PropagateAssignments holds each June assignment fixed for July of the
// formation year through the following June. Only months with a positive
// weight and an assigned value code are returned.
func PropagateAssignments(months []WeightedMonth, assignments []Assignment) []PortfolioMonth {
	type holding struct {
		permno int64
		year   int
	}

	active := make(map[holding]Assignment, len(assignments))
	for _, asgn := range assignments {
		if asgn.Size == "" || asgn.Value == "" {
			continue
		}
		active[holding{permno: asgn.Permno, year: asgn.FFYear}] = asgn
	}

	res := make([]PortfolioMonth, 0, len(months))
	for idx := range months {
		wm := &months[idx]
		asgn, ok := active[holding{permno: wm.Permno, year: wm.FFYear}]
		if !ok || !(wm.Weight > 0) {
			continue
		}

		res = append(res, PortfolioMonth{
			WeightedMonth: *wm,
			Size:          asgn.Size,
			Value:         asgn.Value,
		})
	}

	return res
}
