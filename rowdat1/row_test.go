// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowdat1

import (
	"testing"

	"github.com/singlestore-labs/rowcodec/coltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpRowThenLoadRowScenario5(t *testing.T) {
	colspec := []ColSpec{
		{Name: "a", Code: int(coltype.Long)},
		{Name: "b", Code: -int(coltype.VarChar)},
	}
	rowIDs := []uint64{42}
	rows := [][]interface{}{{int64(7), []byte("xyz")}}

	buf, err := DumpRow(colspec, rowIDs, rows)
	require.NoError(t, err)

	expected := []byte{
		0x2a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // row id 42
		0x00,                   // not null
		0x07, 0x00, 0x00, 0x00, // i32 7
		0x00,                   // not null
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // length 3
		0x78, 0x79, 0x7a, // "xyz"
	}
	assert.Equal(t, expected, buf)

	gotIDs, gotRows, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, []uint64{42}, gotIDs)
	require.Len(t, gotRows, 1)
	assert.Equal(t, int64(7), gotRows[0][0])
	assert.Equal(t, []byte("xyz"), gotRows[0][1])
}

func TestLoadRowNullCell(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Long)}}
	buf, err := DumpRow(colspec, []uint64{1}, [][]interface{}{{nil}})
	require.NoError(t, err)

	ids, rows, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids)
	assert.Nil(t, rows[0][0])
}

func TestLoadRowMultipleRows(t *testing.T) {
	colspec := []ColSpec{
		{Name: "id", Code: int(coltype.Long)},
		{Name: "name", Code: int(coltype.VarChar)},
	}
	rowIDs := []uint64{1, 2, 3}
	rows := [][]interface{}{
		{int64(10), "alpha"},
		{int64(20), nil},
		{int64(30), "gamma"},
	}

	buf, err := DumpRow(colspec, rowIDs, rows)
	require.NoError(t, err)

	gotIDs, gotRows, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, rowIDs, gotIDs)
	assert.Equal(t, int64(10), gotRows[0][0])
	assert.Equal(t, "alpha", gotRows[0][1])
	assert.Nil(t, gotRows[1][1])
	assert.Equal(t, "gamma", gotRows[2][1])
}

func TestLoadRowShortBufferIsError(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Long)}}
	_, _, err := LoadRow(colspec, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDumpRowRejectsUnsupportedType(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Decimal)}}
	_, err := DumpRow(colspec, []uint64{1}, [][]interface{}{{"1.5"}})
	assert.Error(t, err)
}

func TestLoadRowRejectsUnsupportedType(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Bit)}}
	_, _, err := LoadRow(colspec, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestRowFloatAndDoubleRoundTrip(t *testing.T) {
	colspec := []ColSpec{
		{Name: "f", Code: int(coltype.Float)},
		{Name: "d", Code: int(coltype.Double)},
	}
	rows := [][]interface{}{{float64(3.5), float64(-2.25)}}

	buf, err := DumpRow(colspec, []uint64{0}, rows)
	require.NoError(t, err)

	_, got, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got[0][0].(float32), 0.0001)
	assert.InDelta(t, -2.25, got[0][1].(float64), 0.0001)
}

func TestRowUnsignedIntegerRoundTrip(t *testing.T) {
	colspec := []ColSpec{{Name: "u", Code: -int(coltype.Tiny)}}
	buf, err := DumpRow(colspec, []uint64{0}, [][]interface{}{{int64(250)}})
	require.NoError(t, err)

	_, got, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), got[0][0])
}
