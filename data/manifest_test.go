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
package data_test

import (
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/famafrench"
)

var _ = Describe("Manifest", func() {
	It("records a run", func() {
		dir := GinkgoT().TempDir()

		cfg := famafrench.DefaultConfig()
		cfg.Now = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

		out := sampleOutputs()
		out.Stats = famafrench.RunStats{NumFundamentals: 10, NumMonths: 2}

		manifest := data.NewManifest("1.2.3", data.FormatParquet, cfg)
		Expect(manifest.RunID).NotTo(Equal(uuid.Nil))
		manifest.Finish(out, []string{dir + "/FF_1993_factors.parquet"})
		Expect(manifest.Duration()).To(BeNumerically(">=", 0))

		fn, err := manifest.Save(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(fn).To(BeAnExistingFile())

		loaded, err := data.LoadManifest(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.RunID).To(Equal(manifest.RunID))
		Expect(loaded.Version).To(Equal("1.2.3"))
		Expect(loaded.Now).To(Equal("2024-01-01"))
		Expect(loaded.FirstMonth).To(Equal("2001-07-31"))
		Expect(loaded.LastMonth).To(Equal("2001-08-31"))
		Expect(loaded.Files).To(Equal([]string{"FF_1993_factors.parquet"}))
		Expect(loaded.Stats).To(Equal(out.Stats))
		Expect(loaded.StartTime.Equal(manifest.StartTime)).To(BeTrue())
	})

	It("fails without a manifest", func() {
		_, err := data.LoadManifest(GinkgoT().TempDir())
		Expect(err).To(HaveOccurred())
	})
})
