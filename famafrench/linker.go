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
	"time"

	"github.com/rs/zerolog"
)

type securityYear struct {
	permno int64
	month  int
}

// validAt reports whether the link covers date; open-ended links run until now
func (link *Link) validAt(date, now time.Time) bool {
	end := link.LinkEndDt
	if end.IsZero() {
		end = now
	}
	return !date.Before(link.LinkDt) && !date.After(end)
}

// LinkFundamentals attaches book equity to the June security records. Each
// fiscal year is matched to the June following the calendar year it ends in
// through every link valid on that June. Book-to-market is 1000 * BE /
// December ME.
//
// When more than one fiscal year maps to the same security and June the
// latest datadate wins, then the lowest gvkey. Fundamentals without a valid
// link and June records without fundamentals are dropped.
func LinkFundamentals(ctx context.Context, cfg Config, bookEquity []BookEquity, links []Link, june []JuneRecord) []LinkedRecord {
	logger := zerolog.Ctx(ctx)

	linksByGvkey := make(map[string][]*Link)
	for idx := range links {
		link := &links[idx]
		linksByGvkey[link.Gvkey] = append(linksByGvkey[link.Gvkey], link)
	}

	matched := make(map[securityYear]*BookEquity)
	unlinked := 0
	for idx := range bookEquity {
		be := &bookEquity[idx]
		jdate := FormationDate(be.Datadate)

		found := false
		for _, link := range linksByGvkey[be.Gvkey] {
			if !link.validAt(jdate, cfg.Now) {
				continue
			}

			found = true
			key := securityYear{permno: link.Permno, month: monthKey(jdate)}
			if prev, ok := matched[key]; !ok || preferBookEquity(be, prev) {
				matched[key] = be
			}
		}

		if !found {
			unlinked++
		}
	}

	res := make([]LinkedRecord, 0, len(june))
	for idx := range june {
		rec := &june[idx]
		be, ok := matched[securityYear{permno: rec.Permno, month: monthKey(rec.Date)}]
		if !ok {
			continue
		}

		res = append(res, LinkedRecord{
			JuneRecord: *rec,
			Gvkey:      be.Gvkey,
			Datadate:   be.Datadate,
			BE:         be.BE,
			Count:      be.Count,
			BEME:       be.BE * 1000 / rec.DecME,
		})
	}

	logger.Debug().Int("NumUnlinked", unlinked).Int("NumJune", len(june)).Int("NumLinked", len(res)).
		Msg("linked fundamentals to june records")

	return res
}

func preferBookEquity(candidate, current *BookEquity) bool {
	if c := candidate.Datadate.Compare(current.Datadate); c != 0 {
		return c > 0
	}
	return candidate.Gvkey < current.Gvkey
}
