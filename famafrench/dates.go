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

import "time"

// MonthEnd returns the last calendar day of the month containing t
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// FormationDate returns the June month-end on which a fiscal year ending on
// datadate is first used for portfolio formation
func FormationDate(datadate time.Time) time.Time {
	return time.Date(datadate.Year()+1, time.June, 30, 0, 0, 0, 0, time.UTC)
}

// formationYear returns the July-June year a month belongs to and the
// position of the month within it (July = 1)
func formationYear(date time.Time) (year, month int) {
	year = date.Year()
	if date.Month() < time.July {
		year--
	}
	month = (int(date.Month())+5)%12 + 1
	return
}

// monthKey is a comparable month index used for map lookups
func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
