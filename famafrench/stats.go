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
	"math"
	"slices"
)

// Quantile returns the q-th quantile of values using linear interpolation
// between the closest ranks. NaN values are ignored; an empty input yields
// NaN.
func Quantile(values []float64, q float64) float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}

	if len(sorted) == 0 {
		return math.NaN()
	}

	slices.Sort(sorted)

	pos := float64(len(sorted)-1) * q
	lower := math.Floor(pos)
	frac := pos - lower
	lo := int(lower)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	return lerp(sorted[lo], sorted[lo+1], frac)
}

// lerp interpolates from the nearer endpoint, which keeps the result
// bit-identical to numpy's linear percentile method
func lerp(a, b, t float64) float64 {
	diff := b - a
	if t >= 0.5 {
		return b - diff*(1-t)
	}
	return a + diff*t
}

// WeightedAverage returns sum(value * weight) / sum(weight). Rows with a
// missing value still count towards the total weight. A zero total weight
// yields NaN.
func WeightedAverage(values, weights []float64) float64 {
	var num, den float64
	for idx := range values {
		if !math.IsNaN(weights[idx]) {
			den += weights[idx]
		}

		prod := values[idx] * weights[idx]
		if !math.IsNaN(prod) {
			num += prod
		}
	}

	if den == 0 {
		return math.NaN()
	}

	return num / den
}
