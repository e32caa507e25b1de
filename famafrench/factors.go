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
	"math"
	"slices"
	"time"
)

type portfolioMonth struct {
	month int
	size  SizeCode
	value ValueCode
}

// BuildPortfolios computes the value-weighted return and the firm count of
// each (month, size, value) portfolio. Firms are only counted when their
// return is defined. The output is sorted by date, size code and value code.
func BuildPortfolios(rows []PortfolioMonth) ([]PortfolioReturn, []PortfolioCount) {
	type members struct {
		date    time.Time
		returns []float64
		weights []float64
	}

	groups := make(map[portfolioMonth]*members)
	for idx := range rows {
		row := &rows[idx]
		key := portfolioMonth{month: monthKey(row.Date), size: row.Size, value: row.Value}
		grp, ok := groups[key]
		if !ok {
			grp = &members{date: row.Date}
			groups[key] = grp
		}
		grp.returns = append(grp.returns, row.Ret)
		grp.weights = append(grp.weights, row.Weight)
	}

	keys := make([]portfolioMonth, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b portfolioMonth) int {
		if c := cmp.Compare(a.month, b.month); c != 0 {
			return c
		}
		if c := cmp.Compare(a.size, b.size); c != 0 {
			return c
		}
		return cmp.Compare(a.value, b.value)
	})

	returns := make([]PortfolioReturn, len(keys))
	counts := make([]PortfolioCount, len(keys))
	for idx, key := range keys {
		grp := groups[key]

		numFirms := 0
		for _, ret := range grp.returns {
			if !math.IsNaN(ret) {
				numFirms++
			}
		}

		returns[idx] = PortfolioReturn{
			Date:  grp.date,
			Size:  key.size,
			Value: key.value,
			VWRet: WeightedAverage(grp.returns, grp.weights),
		}
		counts[idx] = PortfolioCount{
			Date:   grp.date,
			Size:   key.size,
			Value:  key.value,
			NFirms: numFirms,
		}
	}

	return returns, counts
}

// SixPortfolios is the wide form of the six size/value portfolio returns of
// one month. Missing portfolios are NaN.
type SixPortfolios struct {
	SL, SME, SH float64
	BL, BME, BH float64
}

func NewSixPortfolios() SixPortfolios {
	nan := math.NaN()
	return SixPortfolios{SL: nan, SME: nan, SH: nan, BL: nan, BME: nan, BH: nan}
}

// Set stores the value of a portfolio; unknown codes are ignored
func (six *SixPortfolios) Set(size SizeCode, value ValueCode, v float64) {
	if slot := six.slot(size, value); slot != nil {
		*slot = v
	}
}

func (six *SixPortfolios) slot(size SizeCode, value ValueCode) *float64 {
	switch {
	case size == Small && value == Low:
		return &six.SL
	case size == Small && value == Medium:
		return &six.SME
	case size == Small && value == High:
		return &six.SH
	case size == Big && value == Low:
		return &six.BL
	case size == Big && value == Medium:
		return &six.BME
	case size == Big && value == High:
		return &six.BH
	}
	return nil
}

// HML is (BH+SH)/2 - (BL+SL)/2
func (six SixPortfolios) HML() float64 {
	return (six.BH+six.SH)/2 - (six.BL+six.SL)/2
}

// SMB is (SL+SME+SH)/3 - (BL+BME+BH)/3
func (six SixPortfolios) SMB() float64 {
	return (six.SL+six.SME+six.SH)/3 - (six.BL+six.BME+six.BH)/3
}

// SixCounts is the wide form of the firm counts of one month. Missing
// portfolios hold no firms.
type SixCounts struct {
	SL, SME, SH int
	BL, BME, BH int
}

func (six *SixCounts) Set(size SizeCode, value ValueCode, n int) {
	switch {
	case size == Small && value == Low:
		six.SL = n
	case size == Small && value == Medium:
		six.SME = n
	case size == Small && value == High:
		six.SH = n
	case size == Big && value == Low:
		six.BL = n
	case size == Big && value == Medium:
		six.BME = n
	case size == Big && value == High:
		six.BH = n
	}
}

// HML counts the firms of the four corner portfolios
func (six SixCounts) HML() int {
	return (six.SH + six.BH) + (six.SL + six.BL)
}

// SMB counts the firms of all six portfolios
func (six SixCounts) SMB() int {
	return (six.BL + six.BME + six.BH) + (six.SL + six.SME + six.SH)
}

// BuildFactors combines the six portfolios of every month into SMB and HML
// along with the matching firm-count diagnostics. Months are sorted
// ascending.
func BuildFactors(returns []PortfolioReturn, counts []PortfolioCount) ([]Factor, []FactorCount) {
	dates := make(map[int]time.Time)

	wideReturns := make(map[int]*SixPortfolios)
	for _, pr := range returns {
		key := monthKey(pr.Date)
		six, ok := wideReturns[key]
		if !ok {
			fresh := NewSixPortfolios()
			six = &fresh
			wideReturns[key] = six
			dates[key] = pr.Date
		}
		six.Set(pr.Size, pr.Value, pr.VWRet)
	}

	wideCounts := make(map[int]*SixCounts)
	for _, pc := range counts {
		key := monthKey(pc.Date)
		six, ok := wideCounts[key]
		if !ok {
			six = &SixCounts{}
			wideCounts[key] = six
			dates[key] = pc.Date
		}
		six.Set(pc.Size, pc.Value, pc.NFirms)
	}

	factors := make([]Factor, 0, len(wideReturns))
	for key, six := range wideReturns {
		factors = append(factors, Factor{
			Date: dates[key],
			SMB:  six.SMB(),
			HML:  six.HML(),
		})
	}
	slices.SortFunc(factors, func(a, b Factor) int { return a.Date.Compare(b.Date) })

	factorCounts := make([]FactorCount, 0, len(wideCounts))
	for key, six := range wideCounts {
		factorCounts = append(factorCounts, FactorCount{
			Date:  dates[key],
			SMB:   six.SMB(),
			HML:   six.HML(),
			Total: six.SMB(),
		})
	}
	slices.SortFunc(factorCounts, func(a, b FactorCount) int { return a.Date.Compare(b.Date) })

	return factors, factorCounts
}
