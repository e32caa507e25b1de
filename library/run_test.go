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
package library_test

import (
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/famafrench"
	"github.com/penny-vault/ffactors/library"
)

var _ = Describe("Run", func() {
	var manifest *data.Manifest

	BeforeEach(func() {
		cfg := famafrench.DefaultConfig()
		manifest = data.NewManifest("0.3.0", data.FormatParquet, cfg)
		manifest.RunID = uuid.MustParse("5d0a4b62-8f4e-4a53-9d0f-6f7a1c2b3d4e")
		manifest.EndTime = manifest.StartTime.Add(90 * time.Second)
		manifest.FirstMonth = "1970-07-31"
		manifest.LastMonth = "2023-12-31"
		manifest.Stats = famafrench.RunStats{NumMonths: 642, NumLinked: 250_000, NumAssigned: 240_000}
	})

	It("is created from a manifest", func() {
		run := library.NewRun(manifest)
		Expect(run.ID).To(Equal(manifest.RunID))
		Expect(run.ShortID()).To(Equal("5d0a4b"))
		Expect(run.FirstMonth).To(Equal(time.Date(1970, time.July, 31, 0, 0, 0, 0, time.UTC)))
		Expect(run.LastMonth).To(Equal(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
		Expect(run.NumMonths).To(Equal(642))
		Expect(run.ReferenceExchange).To(Equal(famafrench.ExchangeNYSE))
	})

	It("leaves the months empty when the run produced no factors", func() {
		manifest.FirstMonth = ""
		manifest.LastMonth = ""

		run := library.NewRun(manifest)
		Expect(run.FirstMonth.IsZero()).To(BeTrue())
		Expect(run.LastMonth.IsZero()).To(BeTrue())
	})

	Describe("RunsMarkdown", func() {
		It("describes an empty library", func() {
			summary := library.RunsMarkdown("postgres://localhost/ff", nil, time.Now())
			Expect(summary).To(ContainSubstring("Runs: 0"))
			Expect(summary).To(ContainSubstring("Last Updated: Never"))
		})

		It("lists every run", func() {
			run := library.NewRun(manifest)
			summary := library.RunsMarkdown("postgres://localhost/ff", []*library.Run{run}, run.EndTime.Add(2*time.Hour))

			Expect(summary).To(ContainSubstring("Months in latest run: 642"))
			Expect(summary).To(ContainSubstring(" ago ("))
			Expect(summary).To(ContainSubstring("(Jul 1970 - Dec 2023) [5d0a4b]"))
			Expect(summary).To(ContainSubstring("250,000 linked, 240,000 assigned"))
		})
	})
})
