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
package famafrench_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ffactors/famafrench"
)

var _ = Describe("MarketEquity", func() {
	jan := day(2000, time.January, 31)
	feb := day(2000, time.February, 29)

	It("attributes the firm's market equity to its largest share class", func() {
		res := famafrench.AggregateMarketEquity([]famafrench.SecurityMonth{
			security(20, 7, jan, 5, 10, 0),
			security(10, 7, jan, 10, 10, 0),
		})

		Expect(res).To(HaveLen(1))
		Expect(res[0].Permno).To(Equal(int64(10)))
		Expect(res[0].ME).To(Equal(150.0))
	})

	It("conserves the total value of the firm", func() {
		months := []famafrench.SecurityMonth{
			security(1, 7, jan, 3, 10, 0),
			security(2, 7, jan, 12.5, 4, 0),
			security(3, 7, jan, 1, 7, 0),
		}
		res := famafrench.AggregateMarketEquity(months)

		total := 0.0
		for _, sm := range months {
			total += sm.Price * sm.Shares
		}
		Expect(res).To(HaveLen(1))
		Expect(res[0].ME).To(Equal(total))
		Expect(res[0].Permno).To(Equal(int64(2)))
	})

	It("breaks ties by the lowest permno", func() {
		res := famafrench.AggregateMarketEquity([]famafrench.SecurityMonth{
			security(30, 7, jan, 10, 10, 0),
			security(12, 7, jan, 20, 5, 0),
			security(15, 7, jan, 25, 4, 0),
		})

		Expect(res).To(HaveLen(1))
		Expect(res[0].Permno).To(Equal(int64(12)))
		Expect(res[0].ME).To(Equal(300.0))
	})

	It("skips share classes with missing market equity", func() {
		res := famafrench.AggregateMarketEquity([]famafrench.SecurityMonth{
			security(1, 7, jan, nan, 10, 0),
			security(2, 7, jan, 4, 10, 0),
		})

		Expect(res).To(HaveLen(1))
		Expect(res[0].Permno).To(Equal(int64(2)))
		Expect(res[0].ME).To(Equal(40.0))
	})

	It("keeps the lowest permno when no share class has a market equity", func() {
		res := famafrench.AggregateMarketEquity([]famafrench.SecurityMonth{
			security(5, 7, jan, nan, 10, 0),
			security(3, 7, jan, 4, nan, 0),
		})

		Expect(res).To(HaveLen(1))
		Expect(res[0].Permno).To(Equal(int64(3)))
		Expect(math.IsNaN(res[0].ME)).To(BeTrue())
	})

	It("aggregates every month and firm separately and sorts by permno and date", func() {
		res := famafrench.AggregateMarketEquity([]famafrench.SecurityMonth{
			security(2, 8, feb, 1, 1, 0),
			security(1, 7, feb, 1, 50, 0),
			security(3, 7, feb, 1, 60, 0),
			security(1, 7, jan, 1, 100, 0),
			security(3, 7, jan, 1, 40, 0),
			security(2, 8, jan, 1, 1, 0),
		})

		type row struct {
			permno int64
			month  time.Month
			me     float64
		}
		rows := make([]row, 0, len(res))
		for _, me := range res {
			rows = append(rows, row{me.Permno, me.Date.Month(), me.ME})
		}

		Expect(rows).To(Equal([]row{
			{1, time.January, 140},
			{2, time.January, 1},
			{2, time.February, 1},
			{3, time.February, 110},
		}))
	})
})
