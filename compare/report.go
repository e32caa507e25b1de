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
package compare

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report renders the comparison as markdown
func (res *Result) Report() string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Fama-French 1993 factor comparison\n\n")
	builder.WriteString(p.Sprintf("Compared %d months from %s to %s (%d months matched before the %s cutoff).\n\n",
		len(res.Months), res.First().Format("Jan 2006"), res.End().Format("Jan 2006"),
		res.NumJoined, res.Start.Format("2006-01-02")))

	builder.WriteString("| Factor | Correlation | Mean abs diff | Max abs diff |\n")
	builder.WriteString("|---|---:|---:|---:|\n")
	builder.WriteString(row("SMB", res.SMB))
	builder.WriteString(row("HML", res.HML))

	return builder.String()
}

func row(name string, tracking Tracking) string {
	return fmt.Sprintf("| %s | %s | %s | %s |\n", name,
		decimal(tracking.Correlation, 4), decimal(tracking.MeanAbsDiff, 6), decimal(tracking.MaxAbsDiff, 6))
}

func decimal(v float64, places int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", places, v)
}
