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
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ffactors/famafrench"
)

func juneRecord(permno int64, year int, me, decME float64) famafrench.JuneRecord {
	return famafrench.JuneRecord{
		WeightedMonth: famafrench.WeightedMonth{
			MarketEquity: marketEquity(permno, monthEnd(year, time.June), me, 0),
		},
		DecME: decME,
	}
}

func bookEquity(gvkey string, datadate time.Time, be float64, count int) famafrench.BookEquity {
	return famafrench.BookEquity{
		Gvkey:    gvkey,
		Datadate: datadate,
		Year:     datadate.Year(),
		BE:       be,
		Count:    count,
	}
}

var _ = Describe("Linker", func() {
	var (
		ctx context.Context
		cfg famafrench.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = testConfig()
	})

	It("computes book-to-market against December market equity", func() {
		linked := famafrench.LinkFundamentals(ctx, cfg,
			[]famafrench.BookEquity{bookEquity("001", day(2000, time.December, 31), 100, 3)},
			[]famafrench.Link{{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1)}},
			[]famafrench.JuneRecord{juneRecord(10, 2001, 900, 500)},
		)

		Expect(linked).To(HaveLen(1))
		Expect(linked[0].Gvkey).To(Equal("001"))
		Expect(linked[0].Count).To(Equal(3))
		Expect(linked[0].BEME).To(Equal(200.0))
	})

	It("uses the June after the calendar year the fiscal year ends in", func() {
		linked := famafrench.LinkFundamentals(ctx, cfg,
			[]famafrench.BookEquity{bookEquity("001", day(2000, time.March, 31), 100, 1)},
			[]famafrench.Link{{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1)}},
			[]famafrench.JuneRecord{juneRecord(10, 2000, 900, 500), juneRecord(10, 2001, 900, 500)},
		)

		Expect(linked).To(HaveLen(1))
		Expect(linked[0].Date).To(Equal(monthEnd(2001, time.June)))
	})

	DescribeTable("only follows links valid on the formation date",
		func(link famafrench.Link, now time.Time, expected int) {
			cfg.Now = now
			linked := famafrench.LinkFundamentals(ctx, cfg,
				[]famafrench.BookEquity{bookEquity("001", day(2000, time.December, 31), 100, 1)},
				[]famafrench.Link{link},
				[]famafrench.JuneRecord{juneRecord(10, 2001, 900, 500)},
			)
			Expect(linked).To(HaveLen(expected))
		},
		Entry("open link", famafrench.Link{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1)}, day(2024, time.January, 1), 1),
		Entry("open link closed by the processing time", famafrench.Link{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1)}, day(2001, time.January, 1), 0),
		Entry("link starting on the formation date", famafrench.Link{Gvkey: "001", Permno: 10, LinkDt: day(2001, time.June, 30)}, day(2024, time.January, 1), 1),
		Entry("link ending on the formation date", famafrench.Link{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1), LinkEndDt: day(2001, time.June, 30)}, day(2024, time.January, 1), 1),
		Entry("expired link", famafrench.Link{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1), LinkEndDt: day(2001, time.May, 31)}, day(2024, time.January, 1), 0),
		Entry("future link", famafrench.Link{Gvkey: "001", Permno: 10, LinkDt: day(2001, time.July, 1)}, day(2024, time.January, 1), 0),
		Entry("other firm", famafrench.Link{Gvkey: "002", Permno: 10, LinkDt: day(1990, time.January, 1)}, day(2024, time.January, 1), 0),
		Entry("other security", famafrench.Link{Gvkey: "001", Permno: 11, LinkDt: day(1990, time.January, 1)}, day(2024, time.January, 1), 0),
	)

	It("keeps the latest fiscal year when two end in the same calendar year", func() {
		linked := famafrench.LinkFundamentals(ctx, cfg,
			[]famafrench.BookEquity{
				bookEquity("001", day(2000, time.March, 31), 100, 1),
				bookEquity("001", day(2000, time.December, 31), 250, 2),
			},
			[]famafrench.Link{{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1)}},
			[]famafrench.JuneRecord{juneRecord(10, 2001, 900, 500)},
		)

		Expect(linked).To(HaveLen(1))
		Expect(linked[0].BE).To(Equal(250.0))
		Expect(linked[0].Datadate).To(Equal(day(2000, time.December, 31)))
	})

	It("keeps the lowest gvkey when two firms link to one security", func() {
		linked := famafrench.LinkFundamentals(ctx, cfg,
			[]famafrench.BookEquity{
				bookEquity("009", day(2000, time.December, 31), 300, 1),
				bookEquity("003", day(2000, time.December, 31), 100, 1),
			},
			[]famafrench.Link{
				{Gvkey: "009", Permno: 10, LinkDt: day(1990, time.January, 1)},
				{Gvkey: "003", Permno: 10, LinkDt: day(1990, time.January, 1)},
			},
			[]famafrench.JuneRecord{juneRecord(10, 2001, 900, 500)},
		)

		Expect(linked).To(HaveLen(1))
		Expect(linked[0].Gvkey).To(Equal("003"))
	})

	It("keeps young firms so the eligibility filter can reject them", func() {
		linked := famafrench.LinkFundamentals(ctx, cfg,
			[]famafrench.BookEquity{bookEquity("001", day(2000, time.December, 31), 100, 0)},
			[]famafrench.Link{{Gvkey: "001", Permno: 10, LinkDt: day(1990, time.January, 1)}},
			[]famafrench.JuneRecord{juneRecord(10, 2001, 900, 500)},
		)

		Expect(linked).To(HaveLen(1))
		Expect(famafrench.Eligible(linked[0].BEME, linked[0].ME, linked[0].Count)).To(BeFalse())
	})
})
