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
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ffactors/data"
)

type floatPermnoLink struct {
	Gvkey     *string  `parquet:"name=gvkey, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Permno    *float64 `parquet:"name=permno, type=DOUBLE, repetitiontype=OPTIONAL"`
	LinkDt    *string  `parquet:"name=linkdt, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	LinkEndDt *string  `parquet:"name=linkenddt, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type openLink struct {
	Gvkey  *string `parquet:"name=gvkey, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Permno *int64  `parquet:"name=permno, type=INT64, repetitiontype=OPTIONAL"`
	LinkDt *string `parquet:"name=linkdt, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type requiredLink struct {
	Gvkey     string `parquet:"name=gvkey, type=BYTE_ARRAY, convertedtype=UTF8"`
	Permno    int64  `parquet:"name=permno, type=INT64"`
	LinkDt    string `parquet:"name=linkdt, type=BYTE_ARRAY, convertedtype=UTF8"`
	LinkEndDt string `parquet:"name=linkenddt, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func expectSchemaError(err error, table, column string) {
	GinkgoHelper()

	Expect(err).To(HaveOccurred())
	Expect(errors.Is(err, data.ErrSchemaViolation)).To(BeTrue())

	var schemaErr *data.SchemaError
	Expect(errors.As(err, &schemaErr)).To(BeTrue())
	Expect(schemaErr.Table).To(Equal(table))
	Expect(schemaErr.Column).To(Equal(column))
	if column != "" {
		Expect(err.Error()).To(ContainSubstring(column))
	}
}

var _ = Describe("Schema", func() {
	var (
		ctx context.Context
		dir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
	})

	Context("with csv tables", func() {
		It("names a missing column", func() {
			fn := filepath.Join(dir, "links.csv")
			Expect(os.WriteFile(fn, []byte("gvkey,permno,linkdt\n001000,10001,1990-01-01\n"), 0o644)).To(Succeed())

			_, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatCSV)
			expectSchemaError(err, data.LinkTable, "linkenddt")
		})

		It("rejects an empty file", func() {
			fn := filepath.Join(dir, "links.csv")
			Expect(os.WriteFile(fn, []byte{}, 0o644)).To(Succeed())

			_, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatCSV)
			expectSchemaError(err, data.LinkTable, "")
		})

		It("rejects values of the wrong type", func() {
			fn := filepath.Join(dir, "links.csv")
			Expect(os.WriteFile(fn, []byte("gvkey,permno,linkdt,linkenddt\n001000,abc,1990-01-01,\n"), 0o644)).To(Succeed())

			_, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatCSV)
			Expect(errors.Is(err, data.ErrSchemaViolation)).To(BeTrue())
		})

		It("ignores extra columns", func() {
			fn := filepath.Join(dir, "links.csv")
			Expect(os.WriteFile(fn, []byte("linktype,gvkey,permno,linkdt,linkenddt\nLC,001000,10001,1990-01-01,\n"), 0o644)).To(Succeed())

			records, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(*records[0].Gvkey).To(Equal("001000"))
			Expect(*records[0].Permno).To(Equal(int64(10001)))
			Expect(records[0].LinkEndDt).To(BeNil())
		})
	})

	Context("with parquet tables", func() {
		gvkey := "001000"
		linkdt := "1990-01-01"

		It("names a column with the wrong physical type", func() {
			fn := filepath.Join(dir, "links.parquet")
			permno := 10001.0
			Expect(data.Save(ctx, fn, data.FormatParquet, []floatPermnoLink{
				{Gvkey: &gvkey, Permno: &permno, LinkDt: &linkdt},
			})).To(Succeed())

			_, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatParquet)
			expectSchemaError(err, data.LinkTable, "permno")
			Expect(err.Error()).To(ContainSubstring("INT64"))
		})

		It("names a missing column", func() {
			fn := filepath.Join(dir, "links.parquet")
			permno := int64(10001)
			Expect(data.Save(ctx, fn, data.FormatParquet, []openLink{
				{Gvkey: &gvkey, Permno: &permno, LinkDt: &linkdt},
			})).To(Succeed())

			_, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatParquet)
			expectSchemaError(err, data.LinkTable, "linkenddt")
		})

		It("requires nullable columns", func() {
			fn := filepath.Join(dir, "links.parquet")
			Expect(data.Save(ctx, fn, data.FormatParquet, []requiredLink{
				{Gvkey: gvkey, Permno: 10001, LinkDt: linkdt},
			})).To(Succeed())

			_, err := data.Load[data.LinkRecord](ctx, data.LinkTable, fn, data.FormatParquet)
			expectSchemaError(err, data.LinkTable, "gvkey")
			Expect(err.Error()).To(ContainSubstring("OPTIONAL"))
		})
	})

	It("rejects unknown formats", func() {
		_, err := data.ParseFormat("xlsx")
		Expect(err).To(MatchError(data.ErrUnknownFormat))

		format, err := data.ParseFormat(" CSV ")
		Expect(err).NotTo(HaveOccurred())
		Expect(format).To(Equal(data.FormatCSV))
	})
})
