// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package coltype

import "fmt"

// Range describes the inclusive value bounds of a ROWDAT_1 columnar
// target type, per §4.3.5. YEAR is discontinuous (0..99 ∪ 1901..2155) and
// is checked separately by InYearRange.
type Range struct {
	Min int64
	Max int64
}

// TargetName is the human name used in range-check error messages, e.g.
// "value is outside the valid range for TINYINT".
func TargetName(code Code, unsigned bool) string {
	name, ok := targetNames[code]
	if !ok {
		name = "UNKNOWN"
	}
	if unsigned {
		return "UNSIGNED " + name
	}
	return name
}

var targetNames = map[Code]string{
	Tiny:     "TINYINT",
	Short:    "SMALLINT",
	Int24:    "MEDIUMINT",
	Long:     "INT",
	LongLong: "BIGINT",
	Year:     "YEAR",
}

// IntRange returns the inclusive [min, max] bounds for an integer target
// type. ok is false for non-integer codes.
func IntRange(code Code, unsigned bool) (r Range, ok bool) {
	switch code {
	case Tiny:
		if unsigned {
			return Range{0, 255}, true
		}
		return Range{-128, 127}, true
	case Short:
		if unsigned {
			return Range{0, 65535}, true
		}
		return Range{-32768, 32767}, true
	case Int24:
		if unsigned {
			return Range{0, 16777215}, true
		}
		return Range{-8388608, 8388607}, true
	case Long:
		if unsigned {
			return Range{0, 4294967295}, true
		}
		return Range{-2147483648, 2147483647}, true
	case LongLong:
		// BIGINT UNSIGNED's true max (2^64-1) overflows int64; callers
		// that need the unsigned case must use LongLongUnsignedInRange.
		return Range{-9223372036854775808, 9223372036854775807}, true
	default:
		return Range{}, false
	}
}

// LongLongUnsignedInRange reports whether v (interpreted as the bit
// pattern of an unsigned 64-bit integer) is within BIGINT UNSIGNED's
// range. Every uint64 value is in range, since BIGINT UNSIGNED's max
// (2^64-1) overflows the int64 bounds IntRange returns; callers use this
// instead of IntRange for that one case.
func LongLongUnsignedInRange(v uint64) bool {
	_ = v
	return true
}

// InYearRange reports whether v is a valid YEAR value: the discontinuous
// set {0} ∪ [1..99] ∪ [1901..2155]. MySQL's YEAR(4) domain is 1901-2155
// plus the special zero value; two-digit forms 1-99 are accepted by the
// wire protocol as shorthand for 1901-1999/2001-2069 and passed through
// unmodified here (the caller decides how to expand them).
func InYearRange(v int64) bool {
	if v == 0 {
		return true
	}
	if v >= 1 && v <= 99 {
		return true
	}
	return v >= 1901 && v <= 2155
}

// RangeError formats the out-of-range message used by the ROWDAT_1
// columnar dump path (§4.3.4, §8 scenario 6).
func RangeError(code Code, unsigned bool) error {
	return fmt.Errorf("value is outside the valid range for %s", TargetName(code, unsigned))
}
