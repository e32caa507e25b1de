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
package compare

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/penny-vault/ffactors/famafrench"
)

var ErrNoOverlap = errors.New("computed and reference factors have no month in common")

// DefaultStart is the first month compared unless told otherwise
var DefaultStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Month holds the reference and computed factors of a single month
type Month struct {
	Date      time.Time
	SMBActual float64
	SMBManual float64
	HMLActual float64
	HMLManual float64
}

// Tracking summarizes how closely a computed series follows the reference
type Tracking struct {
	Correlation float64
	MeanAbsDiff float64
	MaxAbsDiff  float64
}

type Result struct {
	Start     time.Time
	NumJoined int
	Months    []Month

	SMB Tracking
	HML Tracking
}

// Compare inner joins computed and reference factors on month and measures
// the agreement of both series over the months on or after start. Reference
// dates are moved to month end before joining.
func Compare(computed, reference []famafrench.Factor, start time.Time) (*Result, error) {
	type monthKey struct {
		year  int
		month time.Month
	}

	actual := make(map[monthKey]famafrench.Factor, len(reference))
	for _, ref := range reference {
		actual[monthKey{ref.Date.Year(), ref.Date.Month()}] = ref
	}

	res := &Result{Start: start}
	for _, factor := range computed {
		ref, ok := actual[monthKey{factor.Date.Year(), factor.Date.Month()}]
		if !ok {
			continue
		}

		res.NumJoined++
		date := famafrench.MonthEnd(factor.Date)
		if date.Before(start) {
			continue
		}

		res.Months = append(res.Months, Month{
			Date:      date,
			SMBActual: ref.SMB,
			SMBManual: factor.SMB,
			HMLActual: ref.HML,
			HMLManual: factor.HML,
		})
	}

	if len(res.Months) == 0 {
		return nil, ErrNoOverlap
	}

	slices.SortFunc(res.Months, func(a, b Month) int { return a.Date.Compare(b.Date) })

	smbActual := make([]float64, len(res.Months))
	smbManual := make([]float64, len(res.Months))
	hmlActual := make([]float64, len(res.Months))
	hmlManual := make([]float64, len(res.Months))
	for idx, month := range res.Months {
		smbActual[idx] = month.SMBActual
		smbManual[idx] = month.SMBManual
		hmlActual[idx] = month.HMLActual
		hmlManual[idx] = month.HMLManual
	}

	res.SMB = track(smbActual, smbManual)
	res.HML = track(hmlActual, hmlManual)

	return res, nil
}

func (res *Result) End() time.Time {
	return res.Months[len(res.Months)-1].Date
}

func (res *Result) First() time.Time {
	return res.Months[0].Date
}

func track(actual, manual []float64) Tracking {
	tracking := Tracking{
		Correlation: Pearson(actual, manual),
		MeanAbsDiff: math.NaN(),
		MaxAbsDiff:  math.NaN(),
	}

	var sum float64
	n := 0
	for idx := range actual {
		diff := math.Abs(actual[idx] - manual[idx])
		if math.IsNaN(diff) {
			continue
		}
		sum += diff
		n++
		if !(diff <= tracking.MaxAbsDiff) {
			tracking.MaxAbsDiff = diff
		}
	}

	if n > 0 {
		tracking.MeanAbsDiff = sum / float64(n)
	}

	return tracking
}

// Pearson returns the sample correlation of x and y over the pairs where
// both are defined. Fewer than two pairs or a constant series yield NaN.
func Pearson(x, y []float64) float64 {
	var sumX, sumY float64
	n := 0
	for idx := range x {
		if math.IsNaN(x[idx]) || math.IsNaN(y[idx]) {
			continue
		}
		sumX += x[idx]
		sumY += y[idx]
		n++
	}

	if n < 2 {
		return math.NaN()
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for idx := range x {
		if math.IsNaN(x[idx]) || math.IsNaN(y[idx]) {
			continue
		}
		dx := x[idx] - meanX
		dy := y[idx] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return math.NaN()
	}

	return cov / math.Sqrt(varX*varY)
}
