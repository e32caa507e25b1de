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

// Input tables
const (
	FundamentalsTable     = "Compustat"
	SecurityMonthsTable   = "CRSP_stock_ciz"
	LinkTable             = "CRSP_Comp_Link_Table"
	ReferenceFactorsTable = "FF_FACTORS"
)

// Output tables
const (
	PortfolioReturnsTable = "FF_1993_vwret"
	PortfolioCountsTable  = "FF_1993_vwret_n"
	FactorsTable          = "FF_1993_factors"
	FactorCountsTable     = "FF_1993_nfirms"
	ManifestFile          = "FF_1993_manifest.json"
)

// DateLayout is the encoding of every date column
const DateLayout = "2006-01-02"

// FundamentalsRecord is one row of the annual fundamentals table
type FundamentalsRecord struct {
	Gvkey    *string  `csv:"gvkey,omitempty" json:"gvkey" parquet:"name=gvkey, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	Datadate *string  `csv:"datadate,omitempty" json:"datadate" parquet:"name=datadate, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	Seq      *float64 `csv:"seq,omitempty" json:"seq" parquet:"name=seq, type=DOUBLE, repetitiontype=OPTIONAL"`
	Txditc   *float64 `csv:"txditc,omitempty" json:"txditc" parquet:"name=txditc, type=DOUBLE, repetitiontype=OPTIONAL"`
	Pstkrv   *float64 `csv:"pstkrv,omitempty" json:"pstkrv" parquet:"name=pstkrv, type=DOUBLE, repetitiontype=OPTIONAL"`
	Pstkl    *float64 `csv:"pstkl,omitempty" json:"pstkl" parquet:"name=pstkl, type=DOUBLE, repetitiontype=OPTIONAL"`
	Pstk     *float64 `csv:"pstk,omitempty" json:"pstk" parquet:"name=pstk, type=DOUBLE, repetitiontype=OPTIONAL"`
	Year     *int64   `csv:"year,omitempty" json:"year" parquet:"name=year, type=INT64, repetitiontype=OPTIONAL"`
}

// SecurityMonthRecord is one row of the monthly security table
type SecurityMonthRecord struct {
	Permno           *int64   `csv:"permno,omitempty" json:"permno" parquet:"name=permno, type=INT64, repetitiontype=OPTIONAL"`
	Permco           *int64   `csv:"permco,omitempty" json:"permco" parquet:"name=permco, type=INT64, repetitiontype=OPTIONAL"`
	MthCalDt         *string  `csv:"mthcaldt,omitempty" json:"mthcaldt" parquet:"name=mthcaldt, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	MthPrc           *float64 `csv:"mthprc,omitempty" json:"mthprc" parquet:"name=mthprc, type=DOUBLE, repetitiontype=OPTIONAL"`
	ShrOut           *float64 `csv:"shrout,omitempty" json:"shrout" parquet:"name=shrout, type=DOUBLE, repetitiontype=OPTIONAL"`
	MthRet           *float64 `csv:"mthret,omitempty" json:"mthret" parquet:"name=mthret, type=DOUBLE, repetitiontype=OPTIONAL"`
	MthRetx          *float64 `csv:"mthretx,omitempty" json:"mthretx" parquet:"name=mthretx, type=DOUBLE, repetitiontype=OPTIONAL"`
	ShareType        *string  `csv:"sharetype,omitempty" json:"sharetype" parquet:"name=sharetype, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SecurityType     *string  `csv:"securitytype,omitempty" json:"securitytype" parquet:"name=securitytype, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SecuritySubtype  *string  `csv:"securitysubtype,omitempty" json:"securitysubtype" parquet:"name=securitysubtype, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	USIncFlg         *string  `csv:"usincflg,omitempty" json:"usincflg" parquet:"name=usincflg, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	IssuerType       *string  `csv:"issuertype,omitempty" json:"issuertype" parquet:"name=issuertype, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	PrimaryExch      *string  `csv:"primaryexch,omitempty" json:"primaryexch" parquet:"name=primaryexch, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	ConditionalType  *string  `csv:"conditionaltype,omitempty" json:"conditionaltype" parquet:"name=conditionaltype, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	TradingStatusFlg *string  `csv:"tradingstatusflg,omitempty" json:"tradingstatusflg" parquet:"name=tradingstatusflg, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
}

// LinkRecord maps a gvkey to a permno over [linkdt, linkenddt]. An empty
// linkenddt is open-ended.
type LinkRecord struct {
	Gvkey     *string `csv:"gvkey,omitempty" json:"gvkey" parquet:"name=gvkey, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	Permno    *int64  `csv:"permno,omitempty" json:"permno" parquet:"name=permno, type=INT64, repetitiontype=OPTIONAL"`
	LinkDt    *string `csv:"linkdt,omitempty" json:"linkdt" parquet:"name=linkdt, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	LinkEndDt *string `csv:"linkenddt,omitempty" json:"linkenddt" parquet:"name=linkenddt, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
}

// ReferenceFactorRecord is one month of the published factor library
type ReferenceFactorRecord struct {
	Date *string  `csv:"date,omitempty" json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SMB  *float64 `csv:"smb,omitempty" json:"smb" parquet:"name=smb, type=DOUBLE, repetitiontype=OPTIONAL"`
	HML  *float64 `csv:"hml,omitempty" json:"hml" parquet:"name=hml, type=DOUBLE, repetitiontype=OPTIONAL"`
}

type PortfolioReturnRecord struct {
	Date         *string  `csv:"date,omitempty" json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SizeCode     *string  `csv:"size_code,omitempty" json:"size_code" parquet:"name=size_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	ValueCode    *string  `csv:"value_code,omitempty" json:"value_code" parquet:"name=value_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	CombinedCode *string  `csv:"combined_code,omitempty" json:"combined_code" parquet:"name=combined_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	VWRet        *float64 `csv:"vwret,omitempty" json:"vwret" parquet:"name=vwret, type=DOUBLE, repetitiontype=OPTIONAL"`
}

type PortfolioCountRecord struct {
	Date         *string `csv:"date,omitempty" json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SizeCode     *string `csv:"size_code,omitempty" json:"size_code" parquet:"name=size_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	ValueCode    *string `csv:"value_code,omitempty" json:"value_code" parquet:"name=value_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	CombinedCode *string `csv:"combined_code,omitempty" json:"combined_code" parquet:"name=combined_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	NFirms       *int64  `csv:"n_firms,omitempty" json:"n_firms" parquet:"name=n_firms, type=INT64, repetitiontype=OPTIONAL"`
}

type FactorRecord struct {
	Date *string  `csv:"date,omitempty" json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SMB  *float64 `csv:"SMB,omitempty" json:"SMB" parquet:"name=SMB, type=DOUBLE, repetitiontype=OPTIONAL"`
	HML  *float64 `csv:"HML,omitempty" json:"HML" parquet:"name=HML, type=DOUBLE, repetitiontype=OPTIONAL"`
}

type FactorCountRecord struct {
	Date  *string `csv:"date,omitempty" json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL"`
	SMB   *int64  `csv:"SMB,omitempty" json:"SMB" parquet:"name=SMB, type=INT64, repetitiontype=OPTIONAL"`
	HML   *int64  `csv:"HML,omitempty" json:"HML" parquet:"name=HML, type=INT64, repetitiontype=OPTIONAL"`
	Total *int64  `csv:"TOTAL,omitempty" json:"TOTAL" parquet:"name=TOTAL, type=INT64, repetitiontype=OPTIONAL"`
}
