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
)

// PreferredStock resolves the preferred stock value of a firm-year:
// redemption value, then liquidating value, then capital value, then 0
func PreferredStock(f *Fundamental) float64 {
	for _, ps := range []float64{f.Pstkrv, f.Pstkl, f.Pstk} {
		if !math.IsNaN(ps) {
			return ps
		}
	}
	return 0
}

// CalcBookEquity computes book equity and the number of prior years in the
// fundamentals panel for every firm-year. Book equity that is not strictly
// positive is NaN; the record is kept. The result is sorted by gvkey and
// datadate.
func CalcBookEquity(fundamentals []Fundamental) []BookEquity {
	res := make([]BookEquity, len(fundamentals))
	for idx := range fundamentals {
		f := &fundamentals[idx]

		txditc := f.Txditc
		if math.IsNaN(txditc) {
			txditc = 0
		}

		be := f.Seq + txditc - PreferredStock(f)
		if !(be > 0) {
			be = math.NaN()
		}

		res[idx] = BookEquity{
			Gvkey:    f.Gvkey,
			Datadate: f.Datadate,
			Year:     f.Year,
			BE:       be,
		}
	}

	slices.SortStableFunc(res, func(a, b BookEquity) int {
		if c := cmp.Compare(a.Gvkey, b.Gvkey); c != 0 {
			return c
		}
		return a.Datadate.Compare(b.Datadate)
	})

	for idx := 1; idx < len(res); idx++ {
		if res[idx].Gvkey == res[idx-1].Gvkey {
			res[idx].Count = res[idx-1].Count + 1
		}
	}

	return res
}
