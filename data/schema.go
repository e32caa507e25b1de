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
package data

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
)

var ErrSchemaViolation = errors.New("schema violation")

// SchemaError describes a table that does not conform to its schema. It
// always matches ErrSchemaViolation with errors.Is.
type SchemaError struct {
	Table  string
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: table %s: %s", ErrSchemaViolation, e.Table, e.Reason)
	}
	return fmt.Sprintf("%s: table %s: column %s: %s", ErrSchemaViolation, e.Table, e.Column, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaViolation
}

type column struct {
	name     string
	physical parquet.Type
}

// columnsOf lists the columns a record type requires, as declared by its
// parquet struct tags
func columnsOf[T any]() []column {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	cols := make([]column, 0, typ.NumField())
	for idx := 0; idx < typ.NumField(); idx++ {
		tag, ok := typ.Field(idx).Tag.Lookup("parquet")
		if !ok {
			continue
		}

		var col column
		for _, item := range strings.Split(tag, ",") {
			key, val, found := strings.Cut(strings.TrimSpace(item), "=")
			if !found {
				continue
			}
			switch strings.ToLower(key) {
			case "name":
				col.name = val
			case "type":
				if physical, err := parquet.TypeFromString(val); err == nil {
					col.physical = physical
				}
			}
		}

		cols = append(cols, col)
	}
	return cols
}

// checkParquetSchema compares the footer of a parquet file with the columns
// required by T
func checkParquetSchema[T any](table, fn string) error {
	fr, err := local.NewLocalFileReader(fn)
	if err != nil {
		return err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, nil, 1)
	if err != nil {
		return &SchemaError{Table: table, Reason: fmt.Sprintf("cannot read parquet footer: %s", err)}
	}
	defer pr.ReadStop()

	found := make(map[string]*parquet.SchemaElement, len(pr.SchemaHandler.SchemaElements))
	for idx, elem := range pr.SchemaHandler.SchemaElements {
		// the first element is the root of the schema tree
		if idx == 0 || elem.GetNumChildren() > 0 {
			continue
		}
		found[pr.SchemaHandler.Infos[idx].ExName] = elem
	}

	for _, col := range columnsOf[T]() {
		elem, ok := found[col.name]
		switch {
		case !ok:
			return &SchemaError{Table: table, Column: col.name, Reason: "missing column"}
		case elem.GetType() != col.physical:
			return &SchemaError{
				Table:  table,
				Column: col.name,
				Reason: fmt.Sprintf("expected physical type %s, found %s", col.physical, elem.GetType()),
			}
		case elem.GetRepetitionType() != parquet.FieldRepetitionType_OPTIONAL:
			return &SchemaError{
				Table:  table,
				Column: col.name,
				Reason: fmt.Sprintf("expected an OPTIONAL column, found %s", elem.GetRepetitionType()),
			}
		}
	}

	return nil
}

// checkCSVHeader verifies every column required by T is present in header
func checkCSVHeader[T any](table string, header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = true
	}

	for _, col := range columnsOf[T]() {
		if !present[col.name] {
			return &SchemaError{Table: table, Column: col.name, Reason: "missing column"}
		}
	}

	return nil
}
