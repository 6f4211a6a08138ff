// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package resultset

import "github.com/singlestore-labs/rowcodec/coltype"

// Converter is a caller-supplied per-column decode function (§3.2). When
// installed for a column, it is invoked on every non-NULL cell of that
// column and the built-in fast path is never used for that column.
type Converter func(raw []byte) (interface{}, error)

// ColumnMeta is the immutable per-column metadata held by a Decoder
// (§3.2): type code, flags, scale, encoding, converter, invalid-value
// substitute, and display name.
type ColumnMeta struct {
	Name           string
	TableName      string
	Type           coltype.Code
	Flags          coltype.Flag
	Scale          byte
	Encoding       string // "binary" means no character decoding
	Converter      Converter
	InvalidValue   interface{} // substitute on failed date/time validation
	HasInvalidVal  bool
}

// Unsigned reports whether the column's UNSIGNED flag is set.
func (c ColumnMeta) Unsigned() bool { return c.Flags&coltype.FlagUnsigned != 0 }

// Binary reports whether cell bytes should be returned verbatim instead
// of character-decoded.
func (c ColumnMeta) Binary() bool { return c.Encoding == "" || c.Encoding == "binary" }

// ResultsType selects the materialised row shape (§3.2, §4.2.1).
type ResultsType int

const (
	ResultsTuples ResultsType = iota
	ResultsDicts
	ResultsStructSeq
	ResultsNamedTuple
)

// ParseResultsType maps the options string understood by §4.2.1's table
// to a ResultsType; anything unrecognised defaults to ResultsTuples.
func ParseResultsType(s string) ResultsType {
	switch s {
	case "dict", "dicts":
		return ResultsDicts
	case "structsequence", "structsequences":
		return ResultsStructSeq
	case "namedtuple", "namedtuples":
		return ResultsNamedTuple
	default:
		return ResultsTuples
	}
}

// Options mirrors the options dictionary consumed at decoder
// initialisation (§4.2.1).
type Options struct {
	ResultsType      ResultsType
	ParseJSON        bool
	InvalidValues    map[coltype.Code]interface{}
	Unbuffered       bool
	EncodingErrors   string // passed to character decoding; default "strict"
}

// uniqueNames applies §4.2.1's disambiguation rule: a column name that
// repeats a bare name seen earlier is prefixed with "tableName.".
func uniqueNames(cols []ColumnMeta) []string {
	seen := make(map[string]int, len(cols))
	names := make([]string, len(cols))
	for _, c := range cols {
		seen[c.Name]++
	}
	firstOccurrence := make(map[string]bool, len(cols))
	for i, c := range cols {
		if seen[c.Name] > 1 && firstOccurrence[c.Name] {
			names[i] = c.TableName + "." + c.Name
		} else {
			names[i] = c.Name
		}
		firstOccurrence[c.Name] = true
	}
	return names
}
