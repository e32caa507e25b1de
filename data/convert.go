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
package data

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/penny-vault/ffactors/famafrench"
)

// dateLayouts are tried in order; pandas writes datetimes with a time part
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"20060102",
}

func parseDate(table, column string, value *string) (time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return time.Time{}, &SchemaError{Table: table, Column: column, Reason: "null date"}
	}

	s := strings.TrimSpace(*value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, &SchemaError{Table: table, Column: column, Reason: fmt.Sprintf("cannot parse date %q", s)}
}

func formatDate(t time.Time) *string {
	s := t.Format(DateLayout)
	return &s
}

func orNaN(value *float64) float64 {
	if value == nil {
		return math.NaN()
	}
	return *value
}

func nullable(value float64) *float64 {
	if math.IsNaN(value) {
		return nil
	}
	return &value
}

func str(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func ptr[T any](value T) *T {
	return &value
}

func requireString(table, column string, value *string) (string, error) {
	if s := str(value); s != "" {
		return s, nil
	}
	return "", &SchemaError{Table: table, Column: column, Reason: "null value"}
}

func requireInt(table, column string, value *int64) (int64, error) {
	if value == nil {
		return 0, &SchemaError{Table: table, Column: column, Reason: "null value"}
	}
	return *value, nil
}

// ToFundamentals converts the fundamentals table. A missing year is taken
// from datadate.
func ToFundamentals(records []FundamentalsRecord) ([]famafrench.Fundamental, error) {
	res := make([]famafrench.Fundamental, len(records))
	for idx := range records {
		rec := &records[idx]

		gvkey, err := requireString(FundamentalsTable, "gvkey", rec.Gvkey)
		if err != nil {
			return nil, err
		}

		datadate, err := parseDate(FundamentalsTable, "datadate", rec.Datadate)
		if err != nil {
			return nil, err
		}

		year := datadate.Year()
		if rec.Year != nil {
			year = int(*rec.Year)
		}

		res[idx] = famafrench.Fundamental{
			Gvkey:    gvkey,
			Datadate: datadate,
			Year:     year,
			Seq:      orNaN(rec.Seq),
			Txditc:   orNaN(rec.Txditc),
			Pstkrv:   orNaN(rec.Pstkrv),
			Pstkl:    orNaN(rec.Pstkl),
			Pstk:     orNaN(rec.Pstk),
		}
	}
	return res, nil
}

// ToSecurityMonths converts the monthly security table. The calendar date is
// moved to the end of its month.
func ToSecurityMonths(records []SecurityMonthRecord) ([]famafrench.SecurityMonth, error) {
	res := make([]famafrench.SecurityMonth, len(records))
	for idx := range records {
		rec := &records[idx]

		permno, err := requireInt(SecurityMonthsTable, "permno", rec.Permno)
		if err != nil {
			return nil, err
		}

		permco, err := requireInt(SecurityMonthsTable, "permco", rec.Permco)
		if err != nil {
			return nil, err
		}

		calDate, err := parseDate(SecurityMonthsTable, "mthcaldt", rec.MthCalDt)
		if err != nil {
			return nil, err
		}

		res[idx] = famafrench.SecurityMonth{
			Permno:           permno,
			Permco:           permco,
			CalDate:          calDate,
			Date:             famafrench.MonthEnd(calDate),
			Price:            orNaN(rec.MthPrc),
			Shares:           orNaN(rec.ShrOut),
			Ret:              orNaN(rec.MthRet),
			Retx:             orNaN(rec.MthRetx),
			ShareType:        str(rec.ShareType),
			SecurityType:     str(rec.SecurityType),
			SecuritySubtype:  str(rec.SecuritySubtype),
			USIncFlg:         str(rec.USIncFlg),
			IssuerType:       str(rec.IssuerType),
			PrimaryExch:      str(rec.PrimaryExch),
			ConditionalType:  str(rec.ConditionalType),
			TradingStatusFlg: str(rec.TradingStatusFlg),
		}
	}
	return res, nil
}

// ToLinks converts the link table. An empty linkenddt leaves the link open.
func ToLinks(records []LinkRecord) ([]famafrench.Link, error) {
	res := make([]famafrench.Link, len(records))
	for idx := range records {
		rec := &records[idx]

		gvkey, err := requireString(LinkTable, "gvkey", rec.Gvkey)
		if err != nil {
			return nil, err
		}

		permno, err := requireInt(LinkTable, "permno", rec.Permno)
		if err != nil {
			return nil, err
		}

		linkDt, err := parseDate(LinkTable, "linkdt", rec.LinkDt)
		if err != nil {
			return nil, err
		}

		var linkEndDt time.Time
		if str(rec.LinkEndDt) != "" {
			if linkEndDt, err = parseDate(LinkTable, "linkenddt", rec.LinkEndDt); err != nil {
				return nil, err
			}
		}

		res[idx] = famafrench.Link{
			Gvkey:     gvkey,
			Permno:    permno,
			LinkDt:    linkDt,
			LinkEndDt: linkEndDt,
		}
	}
	return res, nil
}

// ReferenceToFactors converts the published factor table, moving every date
// to the end of its month
func ReferenceToFactors(records []ReferenceFactorRecord) ([]famafrench.Factor, error) {
	res := make([]famafrench.Factor, len(records))
	for idx := range records {
		rec := &records[idx]
		date, err := parseDate(ReferenceFactorsTable, "date", rec.Date)
		if err != nil {
			return nil, err
		}
		res[idx] = famafrench.Factor{
			Date: famafrench.MonthEnd(date),
			SMB:  orNaN(rec.SMB),
			HML:  orNaN(rec.HML),
		}
	}
	return res, nil
}

// ToFactors converts a previously written factor table
func ToFactors(records []FactorRecord) ([]famafrench.Factor, error) {
	res := make([]famafrench.Factor, len(records))
	for idx := range records {
		rec := &records[idx]
		date, err := parseDate(FactorsTable, "date", rec.Date)
		if err != nil {
			return nil, err
		}
		res[idx] = famafrench.Factor{
			Date: date,
			SMB:  orNaN(rec.SMB),
			HML:  orNaN(rec.HML),
		}
	}
	return res, nil
}

func FromPortfolioReturns(returns []famafrench.PortfolioReturn) []PortfolioReturnRecord {
	res := make([]PortfolioReturnRecord, len(returns))
	for idx, pr := range returns {
		res[idx] = PortfolioReturnRecord{
			Date:         formatDate(pr.Date),
			SizeCode:     ptr(string(pr.Size)),
			ValueCode:    ptr(string(pr.Value)),
			CombinedCode: ptr(pr.Code()),
			VWRet:        nullable(pr.VWRet),
		}
	}
	return res
}

func FromPortfolioCounts(counts []famafrench.PortfolioCount) []PortfolioCountRecord {
	res := make([]PortfolioCountRecord, len(counts))
	for idx, pc := range counts {
		res[idx] = PortfolioCountRecord{
			Date:         formatDate(pc.Date),
			SizeCode:     ptr(string(pc.Size)),
			ValueCode:    ptr(string(pc.Value)),
			CombinedCode: ptr(pc.Code()),
			NFirms:       ptr(int64(pc.NFirms)),
		}
	}
	return res
}

func FromFactors(factors []famafrench.Factor) []FactorRecord {
	res := make([]FactorRecord, len(factors))
	for idx, factor := range factors {
		res[idx] = FactorRecord{
			Date: formatDate(factor.Date),
			SMB:  nullable(factor.SMB),
			HML:  nullable(factor.HML),
		}
	}
	return res
}

func FromFactorCounts(counts []famafrench.FactorCount) []FactorCountRecord {
	res := make([]FactorCountRecord, len(counts))
	for idx, fc := range counts {
		res[idx] = FactorCountRecord{
			Date:  formatDate(fc.Date),
			SMB:   ptr(int64(fc.SMB)),
			HML:   ptr(int64(fc.HML)),
			Total: ptr(int64(fc.Total)),
		}
	}
	return res
}
