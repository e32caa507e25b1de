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
	"runtime"
	"time"
)

const (
	ExchangeNYSE   = "N"
	ExchangeAMEX   = "A"
	ExchangeNASDAQ = "Q"
)

// Config holds every setting the pipeline depends on. Nothing in the package
// reads global state.
type Config struct {
	// Exchanges a security must be listed on to enter the universe
	Exchanges []string

	// ReferenceExchange is the only exchange breakpoints are computed from
	ReferenceExchange string

	// Now closes open-ended link intervals
	Now time.Time

	// Workers bounds the number of concurrent per-group computations
	Workers int
}

// DefaultConfig returns the settings of the published methodology
func DefaultConfig() Config {
	return Config{
		Exchanges:         []string{ExchangeNYSE, ExchangeAMEX, ExchangeNASDAQ},
		ReferenceExchange: ExchangeNYSE,
		Now:               time.Now().UTC(),
		Workers:           runtime.NumCPU(),
	}
}

func (cfg Config) workers() int {
	if cfg.Workers < 1 {
		return 1
	}
	return cfg.Workers
}
