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
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the library in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	runs, err := myLibrary.Runs(ctx)
	if err != nil {
		return "", err
	}

	return RunsMarkdown(myLibrary.DBUrl, runs, time.Now()), nil
}

// RunsMarkdown renders runs, most recent first, as markdown relative to now
func RunsMarkdown(dbURL string, runs []*Run, now time.Time) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Factor library\n\n")
	builder.WriteString(fmt.Sprintf("Database: %s\n\n", dbURL))
	builder.WriteString(p.Sprintf("  * Runs: %d\n", len(runs)))

	if len(runs) == 0 {
		builder.WriteString("\nLast Updated: Never\n")
		return builder.String()
	}

	ago := timeago.English
	ago.Max = 100 * 365 * 24 * time.Hour
	latest := runs[0]
	builder.WriteString(p.Sprintf("  * Months in latest run: %d\n\n", latest.NumMonths))
	builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", ago.FormatReference(latest.EndTime, now),
		latest.EndTime.Local().Format("01/02/2006")))

	builder.WriteString("## Runs\n\n")
	for _, run := range runs {
		span := "no factors"
		if !run.FirstMonth.IsZero() {
			span = fmt.Sprintf("%s - %s", run.FirstMonth.Format("Jan 2006"), run.LastMonth.Format("Jan 2006"))
		}

		builder.WriteString(p.Sprintf("  * %s %s (%s) [%s]\n", run.EndTime.Local().Format("2006-01-02 15:04"),
			run.Version, span, run.ShortID()))
		builder.WriteString(p.Sprintf("    * %d linked, %d assigned\n", run.NumLinked, run.NumAssigned))
	}

	return builder.String()
}
