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

var _ = Describe("BookEquity", func() {
	It("subtracts the liquidating value when redemption value is missing", func() {
		res := famafrench.CalcBookEquity([]famafrench.Fundamental{
			fundamental("001004", day(2000, time.May, 31), 80, 10, nan, 5, nan),
		})
		Expect(res).To(HaveLen(1))
		Expect(res[0].BE).To(Equal(85.0))
		Expect(res[0].Count).To(Equal(0))
	})

	DescribeTable("resolves preferred stock through the fallback chain",
		func(pstkrv, pstkl, pstk, expected float64) {
			f := fundamental("001004", day(2000, time.May, 31), 100, 0, pstkrv, pstkl, pstk)
			Expect(famafrench.PreferredStock(&f)).To(Equal(expected))
		},
		Entry("redemption value first", 3.0, 4.0, 5.0, 3.0),
		Entry("liquidating value second", nan, 4.0, 5.0, 4.0),
		Entry("capital value third", nan, nan, 5.0, 5.0),
		Entry("zero when all are missing", nan, nan, nan, 0.0),
	)

	It("treats missing deferred taxes as zero", func() {
		res := famafrench.CalcBookEquity([]famafrench.Fundamental{
			fundamental("001004", day(2000, time.May, 31), 80, nan, nan, nan, nan),
		})
		Expect(res[0].BE).To(Equal(80.0))
	})

	DescribeTable("never produces non-positive book equity",
		func(seq, txditc, pstk float64) {
			res := famafrench.CalcBookEquity([]famafrench.Fundamental{
				fundamental("001004", day(2000, time.May, 31), seq, txditc, nan, nan, pstk),
			})
			Expect(res).To(HaveLen(1), "the record is retained")
			Expect(math.IsNaN(res[0].BE)).To(BeTrue())
		},
		Entry("zero", 10.0, 0.0, 10.0),
		Entry("negative", 10.0, 5.0, 20.0),
		Entry("missing stockholders' equity", nan, 5.0, 1.0),
	)

	It("numbers each firm's years in fiscal date order", func() {
		res := famafrench.CalcBookEquity([]famafrench.Fundamental{
			fundamental("002", day(2001, time.December, 31), 10, 0, nan, nan, nan),
			fundamental("001", day(2002, time.June, 30), 10, 0, nan, nan, nan),
			fundamental("002", day(1999, time.December, 31), 10, 0, nan, nan, nan),
			fundamental("001", day(2000, time.June, 30), 10, 0, nan, nan, nan),
			fundamental("002", day(2000, time.December, 31), -10, 0, nan, nan, nan),
		})

		Expect(res).To(HaveLen(5))
		gvkeys := []string{}
		counts := []int{}
		years := []int{}
		for _, be := range res {
			gvkeys = append(gvkeys, be.Gvkey)
			counts = append(counts, be.Count)
			years = append(years, be.Datadate.Year())
		}
		Expect(gvkeys).To(Equal([]string{"001", "001", "002", "002", "002"}))
		Expect(years).To(Equal([]int{2000, 2002, 1999, 2000, 2001}))
		Expect(counts).To(Equal([]int{0, 1, 0, 1, 2}), "undefined book equity still counts as a year")
	})
})
