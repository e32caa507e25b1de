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
	"context"
	"errors"

	"github.com/rs/zerolog"
)

var (
	ErrNoFundamentals = errors.New("fundamentals table is empty")
	ErrNoSecurities   = errors.New("security month table is empty")
	ErrNoLinks        = errors.New("link table is empty")
)

// Inputs are the three materialized input panels. They are never modified.
type Inputs struct {
	Fundamentals []Fundamental
	Securities   []SecurityMonth
	Links        []Link
}

// Outputs are the four tables produced by a run
type Outputs struct {
	PortfolioReturns []PortfolioReturn
	PortfolioCounts  []PortfolioCount
	Factors          []Factor
	FactorCounts     []FactorCount

	Breakpoints []Breakpoint
	Stats       RunStats
}

// RunStats records the number of rows that survived each stage
type RunStats struct {
	NumFundamentals   int `json:"num_fundamentals"`
	NumSecurityMonths int `json:"num_security_months"`
	NumUniverse       int `json:"num_universe"`
	NumFirmMonths     int `json:"num_firm_months"`
	NumJune           int `json:"num_june"`
	NumLinked         int `json:"num_linked"`
	NumAssigned       int `json:"num_assigned"`
	NumPortfolioRows  int `json:"num_portfolio_rows"`
	NumMonths         int `json:"num_months"`
}

func (stats *RunStats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("NumFundamentals", stats.NumFundamentals)
	e.Int("NumSecurityMonths", stats.NumSecurityMonths)
	e.Int("NumUniverse", stats.NumUniverse)
	e.Int("NumFirmMonths", stats.NumFirmMonths)
	e.Int("NumJune", stats.NumJune)
	e.Int("NumLinked", stats.NumLinked)
	e.Int("NumAssigned", stats.NumAssigned)
	e.Int("NumPortfolioRows", stats.NumPortfolioRows)
	e.Int("NumMonths", stats.NumMonths)
}

// Run executes the full factor construction. It either returns all four
// output tables or an error.
func Run(ctx context.Context, cfg Config, in *Inputs) (*Outputs, error) {
	logger := zerolog.Ctx(ctx)

	switch {
	case in == nil, len(in.Fundamentals) == 0:
		return nil, ErrNoFundamentals
	case len(in.Securities) == 0:
		return nil, ErrNoSecurities
	case len(in.Links) == 0:
		return nil, ErrNoLinks
	}

	stats := RunStats{
		NumFundamentals:   len(in.Fundamentals),
		NumSecurityMonths: len(in.Securities),
	}

	bookEquity := CalcBookEquity(in.Fundamentals)

	universe := FilterUniverse(cfg, in.Securities)
	stats.NumUniverse = len(universe)

	firmMonths := AggregateMarketEquity(universe)
	stats.NumFirmMonths = len(firmMonths)

	monthly, june, err := ComputeWeights(ctx, cfg, firmMonths)
	if err != nil {
		return nil, err
	}
	stats.NumJune = len(june)

	linked := LinkFundamentals(ctx, cfg, bookEquity, in.Links, june)
	stats.NumLinked = len(linked)

	bps, err := ComputeBreakpoints(ctx, cfg, linked)
	if err != nil {
		return nil, err
	}

	assignments := AssignPortfolios(linked, bps)
	for _, asgn := range assignments {
		if asgn.Value != "" {
			stats.NumAssigned++
		}
	}

	holdings := PropagateAssignments(monthly, assignments)
	stats.NumPortfolioRows = len(holdings)

	returns, counts := BuildPortfolios(holdings)
	factors, factorCounts := BuildFactors(returns, counts)
	stats.NumMonths = len(factors)

	logger.Info().Object("Stats", &stats).Msg("factor construction complete")

	return &Outputs{
		PortfolioReturns: returns,
		PortfolioCounts:  counts,
		Factors:          factors,
		FactorCounts:     factorCounts,
		Breakpoints:      bps.Sorted(),
		Stats:            stats,
	}, nil
}
