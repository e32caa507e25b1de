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

// Package famafrench builds the Fama-French (1993) SMB and HML factors from a
// monthly security panel, an annual fundamentals panel and a link table that
// maps fundamentals firms to securities.
//
// Missing numeric values are represented as NaN throughout the package. All
// dates are calendar month-ends in UTC.
package famafrench

import (
	"time"

	"github.com/rs/zerolog"
)

type SizeCode string

const (
	Small SizeCode = "S"
	Big   SizeCode = "B"
)

type ValueCode string

const (
	Low    ValueCode = "L"
	Medium ValueCode = "ME"
	High   ValueCode = "H"
)

// Fundamental is one annual fundamentals observation for a firm
type Fundamental struct {
	Gvkey    string
	Datadate time.Time
	Year     int

	Seq    float64 // stockholders' equity
	Txditc float64 // deferred taxes and investment tax credit
	Pstkrv float64 // preferred stock, redemption value
	Pstkl  float64 // preferred stock, liquidating value
	Pstk   float64 // preferred stock, capital value
}

// BookEquity is the book equity of a firm-year along with the number of
// prior years the firm has in the fundamentals panel
type BookEquity struct {
	Gvkey    string
	Datadate time.Time
	Year     int
	BE       float64
	Count    int
}

// SecurityMonth is one row of the monthly security panel
type SecurityMonth struct {
	Permno  int64
	Permco  int64
	CalDate time.Time
	Date    time.Time // month-end of CalDate

	Price  float64
	Shares float64
	Ret    float64
	Retx   float64

	ShareType        string
	SecurityType     string
	SecuritySubtype  string
	USIncFlg         string
	IssuerType       string
	PrimaryExch      string
	ConditionalType  string
	TradingStatusFlg string
}

func (sm *SecurityMonth) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("Permno", sm.Permno)
	e.Int64("Permco", sm.Permco)
	e.Time("Date", sm.Date)
}

// MarketEquity is the surviving security of a firm in a month; ME holds the
// market equity of the whole firm
type MarketEquity struct {
	SecurityMonth
	ME float64
}

// WeightedMonth carries the portfolio weight of a security for one month of
// its July-June holding year
type WeightedMonth struct {
	MarketEquity

	FFYear  int // formation year, July through the following June
	FFMonth int // 1 = July, 12 = June

	CumRetx    float64
	LagCumRetx float64
	LagME      float64
	MEBase     float64
	Weight     float64
}

// JuneRecord is a June observation along with the previous December's
// market equity
type JuneRecord struct {
	WeightedMonth
	DecME float64
}

// Link maps a fundamentals firm to a security over [LinkDt, LinkEndDt]. A
// zero LinkEndDt is open ended.
type Link struct {
	Gvkey     string
	Permno    int64
	LinkDt    time.Time
	LinkEndDt time.Time
}

// LinkedRecord joins the June security record with the book equity of the
// fiscal year ending in the previous calendar year
type LinkedRecord struct {
	JuneRecord

	Gvkey    string
	Datadate time.Time
	BE       float64
	Count    int
	BEME     float64
}

func (lr *LinkedRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("Permno", lr.Permno)
	e.Str("Gvkey", lr.Gvkey)
	e.Time("FormationDate", lr.Date)
	e.Float64("BEME", lr.BEME)
}

// Breakpoint holds the reference exchange size and value thresholds for one
// formation date
type Breakpoint struct {
	Date       time.Time
	SizeMedian float64
	BM30       float64
	BM70       float64
	NumFirms   int
}

// Assignment is the portfolio of a security for the holding year that starts
// in July of FFYear
type Assignment struct {
	Permno int64
	FFYear int
	Size   SizeCode
	Value  ValueCode
}

// PortfolioMonth is a monthly record that holds an active portfolio assignment
type PortfolioMonth struct {
	WeightedMonth
	Size  SizeCode
	Value ValueCode
}

type PortfolioReturn struct {
	Date  time.Time
	Size  SizeCode
	Value ValueCode
	VWRet float64
}

type PortfolioCount struct {
	Date   time.Time
	Size   SizeCode
	Value  ValueCode
	NFirms int
}

// Code returns the combined portfolio code, e.g. "SME"
func (pr PortfolioReturn) Code() string {
	return string(pr.Size) + string(pr.Value)
}

// Code returns the combined portfolio code, e.g. "BH"
func (pc PortfolioCount) Code() string {
	return string(pc.Size) + string(pc.Value)
}

type Factor struct {
	Date time.Time
	SMB  float64
	HML  float64
}

// FactorCount mirrors the factor arithmetic on firm counts. It is a coverage
// diagnostic only.
type FactorCount struct {
	Date  time.Time
	SMB   int
	HML   int
	Total int
}
