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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ffactors/famafrench"
)

var _ = Describe("Universe", func() {
	var cfg famafrench.Config

	BeforeEach(func() {
		cfg = testConfig()
	})

	It("keeps eligible common stock on every major exchange", func() {
		nyse := security(1, 1, day(2000, time.January, 31), 10, 10, 0)
		amex := security(2, 2, day(2000, time.January, 31), 10, 10, 0)
		amex.PrimaryExch = famafrench.ExchangeAMEX
		nasdaq := security(3, 3, day(2000, time.January, 31), 10, 10, 0)
		nasdaq.PrimaryExch = famafrench.ExchangeNASDAQ
		nasdaq.IssuerType = famafrench.IssuerAssetBackedCorp

		res := famafrench.FilterUniverse(cfg, []famafrench.SecurityMonth{nyse, amex, nasdaq})
		Expect(res).To(HaveLen(3))
	})

	DescribeTable("drops rows failing any condition",
		func(mutate func(*famafrench.SecurityMonth)) {
			sm := security(1, 1, day(2000, time.January, 31), 10, 10, 0)
			mutate(&sm)
			Expect(famafrench.FilterUniverse(cfg, []famafrench.SecurityMonth{sm})).To(BeEmpty())
		},
		Entry("share type", func(sm *famafrench.SecurityMonth) { sm.ShareType = "AD" }),
		Entry("security type", func(sm *famafrench.SecurityMonth) { sm.SecurityType = "FUND" }),
		Entry("security subtype", func(sm *famafrench.SecurityMonth) { sm.SecuritySubtype = "REIT" }),
		Entry("incorporation", func(sm *famafrench.SecurityMonth) { sm.USIncFlg = "N" }),
		Entry("issuer type", func(sm *famafrench.SecurityMonth) { sm.IssuerType = "GOVT" }),
		Entry("exchange", func(sm *famafrench.SecurityMonth) { sm.PrimaryExch = "X" }),
		Entry("trading condition", func(sm *famafrench.SecurityMonth) { sm.ConditionalType = "NW" }),
		Entry("trading status", func(sm *famafrench.SecurityMonth) { sm.TradingStatusFlg = "H" }),
	)
})
