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

type firmMonth struct {
	month  int
	permco int64
}

// AggregateMarketEquity consolidates the share classes of each firm. For
// every (month, permco) the market equity of all securities is summed and
// attributed to the security with the largest market equity; the remaining
// securities are dropped for that month. Ties go to the lowest permno.
// Securities with missing market equity contribute nothing to the sum and
// never win against a defined value; a firm whose securities are all
// missing keeps its lowest permno with NaN market equity.
//
// The result is sorted by permno and date.
func AggregateMarketEquity(months []SecurityMonth) []MarketEquity {
	groups := make(map[firmMonth][]int)
	order := make([]firmMonth, 0)
	for idx := range months {
		key := firmMonth{month: monthKey(months[idx].Date), permco: months[idx].Permco}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], idx)
	}

	res := make([]MarketEquity, 0, len(order))
	for _, key := range order {
		members := groups[key]

		total := 0.0
		defined := false
		survivor := -1
		survivorME := math.NaN()

		for _, idx := range members {
			sm := &months[idx]
			me := sm.Price * sm.Shares
			if math.IsNaN(me) {
				if survivor == -1 || (math.IsNaN(survivorME) && sm.Permno < months[survivor].Permno) {
					survivor = idx
				}
				continue
			}

			total += me
			defined = true

			switch {
			case math.IsNaN(survivorME), me > survivorME:
				survivor = idx
				survivorME = me
			case me == survivorME && sm.Permno < months[survivor].Permno:
				survivor = idx
			}
		}

		if !defined {
			total = math.NaN()
		}

		res = append(res, MarketEquity{
			SecurityMonth: months[survivor],
			ME:            total,
		})
	}

	slices.SortFunc(res, func(a, b MarketEquity) int {
		if c := cmp.Compare(a.Permno, b.Permno); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})

	return res
}
