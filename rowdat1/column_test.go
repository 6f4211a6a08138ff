// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowdat1

import (
	"encoding/binary"
	"testing"

	"github.com/singlestore-labs/rowcodec/coltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadColumnBasic(t *testing.T) {
	colspec := []ColSpec{
		{Name: "a", Code: int(coltype.Long)},
		{Name: "b", Code: int(coltype.VarChar)},
	}
	rowIDs := []uint64{1, 2}
	rows := [][]interface{}{
		{int64(7), "xyz"},
		{nil, "abc"},
	}
	buf, err := DumpRow(colspec, rowIDs, rows)
	require.NoError(t, err)

	gotIDs, cols, err := LoadColumn(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, rowIDs, gotIDs)
	require.Len(t, cols, 2)

	assert.Equal(t, byte('i'), cols[0].FormatTag)
	assert.False(t, cols[0].Mask[0])
	assert.True(t, cols[0].Mask[1])
	assert.Equal(t, int32(7), int32(binary.LittleEndian.Uint32(cols[0].Data[0:4])))

	assert.Equal(t, byte('Q'), cols[1].FormatTag)
	assert.Equal(t, "xyz", cols[1].Objects[0])
	assert.Equal(t, "abc", cols[1].Objects[1])
}

func TestLoadColumnYear(t *testing.T) {
	colspec := []ColSpec{{Name: "y", Code: int(coltype.Year)}}
	rowIDs := []uint64{1, 2}
	rows := [][]interface{}{{int64(1999)}, {int64(2024)}}

	buf, err := DumpRow(colspec, rowIDs, rows)
	require.NoError(t, err)

	gotIDs, cols, err := LoadColumn(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, rowIDs, gotIDs)
	require.Len(t, cols, 1)

	assert.Equal(t, byte('Q'), cols[0].FormatTag)
	require.Len(t, cols[0].Data, 16) // item_size 8 * 2 rows
	assert.Equal(t, uint64(1999), binary.LittleEndian.Uint64(cols[0].Data[0:8]))
	assert.Equal(t, uint64(2024), binary.LittleEndian.Uint64(cols[0].Data[8:16]))
}

func TestDumpColumnRoundTripsThroughLoadRow(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Short)}}
	data := make([]byte, 4)
	binary.LittleEndian.PutUint16(data[0:], 100)
	binary.LittleEndian.PutUint16(data[2:], 200)

	buf, err := DumpColumn(colspec, []uint64{1, 2}, []ColumnSource{
		{FormatTag: 'h', Data: data},
	})
	require.NoError(t, err)

	ids, rows, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)
	assert.Equal(t, int64(100), rows[0][0])
	assert.Equal(t, int64(200), rows[1][0])
}

func TestDumpColumnRangeErrorScenario6(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Tiny)}}
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, 200)

	_, err := DumpColumn(colspec, []uint64{1}, []ColumnSource{
		{FormatTag: 'h', Data: data},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value is outside the valid range for TINYINT")
}

func TestDumpColumnUnsignedTinyNegativeIsRangeError(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: -int(coltype.Tiny)}}
	data := []byte{byte(int8(-1))}

	_, err := DumpColumn(colspec, []uint64{1}, []ColumnSource{
		{FormatTag: 'b', Data: data},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNSIGNED TINYINT")
}

func TestDumpColumnMaskedNullWritesZero(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Long)}}
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, 99)

	buf, err := DumpColumn(colspec, []uint64{5}, []ColumnSource{
		{FormatTag: 'i', Data: data, Mask: []bool{true}},
	})
	require.NoError(t, err)

	_, rows, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Nil(t, rows[0][0])
}

func TestDumpColumnStringHandleSource(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.VarChar)}}
	buf, err := DumpColumn(colspec, []uint64{1}, []ColumnSource{
		{FormatTag: 'O', Objects: []interface{}{"hello"}},
	})
	require.NoError(t, err)

	_, rows, err := LoadRow(colspec, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", rows[0][0])
}

func TestDumpColumnMismatchedLengthErrors(t *testing.T) {
	colspec := []ColSpec{{Name: "a", Code: int(coltype.Long)}}
	_, err := DumpColumn(colspec, []uint64{1, 2}, []ColumnSource{
		{FormatTag: 'i', Data: make([]byte, 4), Mask: []bool{false}},
	})
	assert.Error(t, err)
}

func TestDumpColumnYearRangeCheck(t *testing.T) {
	colspec := []ColSpec{{Name: "y", Code: int(coltype.Year)}}
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, 3000)

	_, err := DumpColumn(colspec, []uint64{1}, []ColumnSource{
		{FormatTag: 'Q', Data: data},
	})
	assert.Error(t, err)
}
