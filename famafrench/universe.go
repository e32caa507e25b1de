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

import "slices"

const (
	ShareTypeNotSpecified = "NS"
	SecurityTypeEquity    = "EQTY"
	SecuritySubtypeCommon = "COM"
	USIncorporated        = "Y"
	IssuerCorporate       = "CORP"
	IssuerAssetBackedCorp = "ACOR"
	ConditionalRegularWay = "RW"
	TradingStatusActive   = "A"
)

// InUniverse reports whether a security-month is US-incorporated common stock
// traded regular way on one of the configured exchanges
func (cfg Config) InUniverse(sm *SecurityMonth) bool {
	return sm.ShareType == ShareTypeNotSpecified &&
		sm.SecurityType == SecurityTypeEquity &&
		sm.SecuritySubtype == SecuritySubtypeCommon &&
		sm.USIncFlg == USIncorporated &&
		(sm.IssuerType == IssuerCorporate || sm.IssuerType == IssuerAssetBackedCorp) &&
		slices.Contains(cfg.Exchanges, sm.PrimaryExch) &&
		sm.ConditionalType == ConditionalRegularWay &&
		sm.TradingStatusFlg == TradingStatusActive
}

// FilterUniverse drops every security-month outside of the eligible universe
func FilterUniverse(cfg Config, months []SecurityMonth) []SecurityMonth {
	res := make([]SecurityMonth, 0, len(months))
	for idx := range months {
		if cfg.InUniverse(&months[idx]) {
			res = append(res, months[idx])
		}
	}
	return res
}
