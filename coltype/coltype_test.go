// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package coltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	code, unsigned := Abs(-15)
	assert.Equal(t, VarChar, code)
	assert.True(t, unsigned)

	code, unsigned = Abs(3)
	assert.Equal(t, Long, code)
	assert.False(t, unsigned)
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, byte('b'), Tiny.FormatTag(false))
	assert.Equal(t, byte('B'), Tiny.FormatTag(true))
	assert.Equal(t, byte('q'), LongLong.FormatTag(false))
	assert.Equal(t, byte('Q'), LongLong.FormatTag(true))
	assert.Equal(t, byte('f'), Float.FormatTag(false))
	assert.Equal(t, byte('Q'), Year.FormatTag(false))
	assert.Equal(t, byte('Q'), VarChar.FormatTag(false))
}

func TestUnsupported(t *testing.T) {
	for _, c := range []Code{Null, Bit, Decimal, NewDecimal, Date, NewDate, Time, DateTime, Timestamp} {
		assert.True(t, c.Unsupported(), "%v should be unsupported", c)
	}
	for _, c := range []Code{Tiny, Short, Long, Int24, LongLong, Float, Double, Year, VarChar, String} {
		assert.False(t, c.Unsupported(), "%v should be supported", c)
	}
}

func TestIntRange(t *testing.T) {
	r, ok := IntRange(Tiny, false)
	assert.True(t, ok)
	assert.Equal(t, Range{-128, 127}, r)

	r, ok = IntRange(Tiny, true)
	assert.True(t, ok)
	assert.Equal(t, Range{0, 255}, r)

	_, ok = IntRange(Float, false)
	assert.False(t, ok)
}

func TestInYearRange(t *testing.T) {
	assert.True(t, InYearRange(0))
	assert.True(t, InYearRange(50))
	assert.True(t, InYearRange(1901))
	assert.True(t, InYearRange(2155))
	assert.False(t, InYearRange(100))
	assert.False(t, InYearRange(2156))
	assert.False(t, InYearRange(1900))
}

func TestItemSize(t *testing.T) {
	assert.Equal(t, 1, Tiny.ItemSize())
	assert.Equal(t, 2, Short.ItemSize())
	assert.Equal(t, 4, Long.ItemSize())
	assert.Equal(t, 4, Int24.ItemSize())
	assert.Equal(t, 4, Float.ItemSize())
	assert.Equal(t, 8, LongLong.ItemSize())
	assert.Equal(t, 8, Double.ItemSize())
	assert.Equal(t, 8, Year.ItemSize())
	assert.Equal(t, 8, VarChar.ItemSize())
}
