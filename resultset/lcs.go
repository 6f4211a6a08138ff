// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package resultset

import "encoding/binary"

// lcsValue is the result of reading one length-coded string cell: the
// raw bytes, whether the cell is SQL NULL, and how many bytes of the
// packet were consumed.
type lcsValue struct {
	raw    []byte
	isNull bool
	n      int
}

// readLengthCodedString reads one LCS cell from data per §4.2.2's length
// encoding table. Truncated multi-byte length prefixes (0xFC/0xFD/0xFE
// with not enough bytes remaining) are treated as NULL rather than an
// error — the spec's documented permissive behaviour (§9 Open
// Questions). A decoded length that exceeds the remaining bytes is
// clamped to the remaining length rather than raising.
func readLengthCodedString(data []byte) lcsValue {
	if len(data) == 0 {
		return lcsValue{isNull: true, n: 0}
	}

	c := data[0]
	switch {
	case c == 0xFB:
		return lcsValue{isNull: true, n: 1}
	case c < 0xFB:
		return sliceLCS(data, 1, uint64(c))
	case c == 0xFC:
		if len(data) < 3 {
			return lcsValue{isNull: true, n: len(data)}
		}
		return sliceLCS(data, 3, uint64(binary.LittleEndian.Uint16(data[1:3])))
	case c == 0xFD:
		if len(data) < 4 {
			return lcsValue{isNull: true, n: len(data)}
		}
		length := uint64(data[1]) | uint64(data[2])<<8 | uint64(data[3])<<16
		return sliceLCS(data, 4, length)
	case c == 0xFE:
		if len(data) < 9 {
			return lcsValue{isNull: true, n: len(data)}
		}
		return sliceLCS(data, 9, binary.LittleEndian.Uint64(data[1:9]))
	default:
		return lcsValue{isNull: true, n: 0}
	}
}

func sliceLCS(data []byte, headerLen int, length uint64) lcsValue {
	remaining := len(data) - headerLen
	if remaining < 0 {
		remaining = 0
	}
	l := length
	if l > uint64(remaining) {
		l = uint64(remaining)
	}
	end := headerLen + int(l)
	return lcsValue{raw: data[headerLen:end], n: end}
}

// readLengthCodedInteger reads a length-coded integer (used for the OK
// packet's affected-rows/insert-id fields and the result-set header's
// field count). Unlike a length-coded STRING, a byte below 0xFB IS the
// value itself — no further bytes are consumed.
func readLengthCodedInteger(data []byte) (value uint64, isNull bool, n int) {
	if len(data) == 0 {
		return 0, true, 0
	}

	c := data[0]
	switch {
	case c == 0xFB:
		return 0, true, 1
	case c < 0xFB:
		return uint64(c), false, 1
	case c == 0xFC:
		if len(data) < 3 {
			return 0, true, len(data)
		}
		return uint64(binary.LittleEndian.Uint16(data[1:3])), false, 3
	case c == 0xFD:
		if len(data) < 4 {
			return 0, true, len(data)
		}
		return uint64(data[1]) | uint64(data[2])<<8 | uint64(data[3])<<16, false, 4
	case c == 0xFE:
		if len(data) < 9 {
			return 0, true, len(data)
		}
		return binary.LittleEndian.Uint64(data[1:9]), false, 9
	default:
		return 0, true, 0
	}
}
