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

	"github.com/penny-vault/ffactors/famafrench"
)

var nan = math.NaN()

func monthEnd(year int, month time.Month) time.Time {
	return famafrench.MonthEnd(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// security returns an eligible NYSE common stock month
func security(permno, permco int64, date time.Time, price, shares, ret float64) famafrench.SecurityMonth {
	return famafrench.SecurityMonth{
		Permno:           permno,
		Permco:           permco,
		CalDate:          date,
		Date:             famafrench.MonthEnd(date),
		Price:            price,
		Shares:           shares,
		Ret:              ret,
		Retx:             ret,
		ShareType:        famafrench.ShareTypeNotSpecified,
		SecurityType:     famafrench.SecurityTypeEquity,
		SecuritySubtype:  famafrench.SecuritySubtypeCommon,
		USIncFlg:         famafrench.USIncorporated,
		IssuerType:       famafrench.IssuerCorporate,
		PrimaryExch:      famafrench.ExchangeNYSE,
		ConditionalType:  famafrench.ConditionalRegularWay,
		TradingStatusFlg: famafrench.TradingStatusActive,
	}
}

func marketEquity(permno int64, date time.Time, me, retx float64) famafrench.MarketEquity {
	sm := security(permno, permno, date, me, 1, retx)
	return famafrench.MarketEquity{SecurityMonth: sm, ME: me}
}

func fundamental(gvkey string, datadate time.Time, seq, txditc, pstkrv, pstkl, pstk float64) famafrench.Fundamental {
	return famafrench.Fundamental{
		Gvkey:    gvkey,
		Datadate: datadate,
		Year:     datadate.Year(),
		Seq:      seq,
		Txditc:   txditc,
		Pstkrv:   pstkrv,
		Pstkl:    pstkl,
		Pstk:     pstk,
	}
}

func testConfig() famafrench.Config {
	cfg := famafrench.DefaultConfig()
	cfg.Now = day(2024, time.January, 1)
	cfg.Workers = 4
	return cfg
}
