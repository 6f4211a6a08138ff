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
	"fmt"
	"math"

	"github.com/singlestore-labs/rowcodec/coltype"
)

// LoadRow decodes a ROWDAT_1 buffer into per-row object tuples plus a
// list of row-ids (§4.3.1).
func LoadRow(colspec []ColSpec, buf []byte) (rowIDs []uint64, rows [][]interface{}, err error) {
	pos := 0
	for pos < len(buf) {
		if len(buf)-pos < 8 {
			return nil, nil, errShortBuffer()
		}
		rowID := binary.LittleEndian.Uint64(buf[pos:])
		pos += 8

		row := make([]interface{}, len(colspec))
		for i, spec := range colspec {
			code, unsigned := spec.resolved()
			if err := checkSupported(code); err != nil {
				return nil, nil, err
			}

			if pos >= len(buf) {
				return nil, nil, errShortBuffer()
			}
			isNull := buf[pos] != 0
			pos++

			v, n, err := readCell(code, unsigned, buf[pos:])
			if err != nil {
				return nil, nil, err
			}
			pos += n

			if isNull {
				row[i] = nil
			} else {
				row[i] = v
			}
		}

		rowIDs = append(rowIDs, rowID)
		rows = append(rows, row)
	}
	return rowIDs, rows, nil
}

// readCell reads one column's fixed-width or length-prefixed payload,
// returning the decoded value (meaningful only when the cell isn't
// NULL — callers still must consume the bytes when it is, per §3.3's
// "encoder/decoder must refuse these with a clear error" / fixed-stride
// note) and the number of bytes consumed.
func readCell(code coltype.Code, unsigned bool, data []byte) (interface{}, int, error) {
	switch code {
	case coltype.Tiny:
		if len(data) < 1 {
			return nil, 0, errShortBuffer()
		}
		if unsigned {
			return uint64(data[0]), 1, nil
		}
		return int64(int8(data[0])), 1, nil

	case coltype.Short:
		if len(data) < 2 {
			return nil, 0, errShortBuffer()
		}
		v := binary.LittleEndian.Uint16(data)
		if unsigned {
			return uint64(v), 2, nil
		}
		return int64(int16(v)), 2, nil

	case coltype.Long, coltype.Int24:
		if len(data) < 4 {
			return nil, 0, errShortBuffer()
		}
		v := binary.LittleEndian.Uint32(data)
		if unsigned {
			return uint64(v), 4, nil
		}
		return int64(int32(v)), 4, nil

	case coltype.LongLong:
		if len(data) < 8 {
			return nil, 0, errShortBuffer()
		}
		v := binary.LittleEndian.Uint64(data)
		if unsigned {
			return v, 8, nil
		}
		return int64(v), 8, nil

	case coltype.Float:
		if len(data) < 4 {
			return nil, 0, errShortBuffer()
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), 4, nil

	case coltype.Double:
		if len(data) < 8 {
			return nil, 0, errShortBuffer()
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), 8, nil

	case coltype.Year:
		if len(data) < 2 {
			return nil, 0, errShortBuffer()
		}
		return int64(binary.LittleEndian.Uint16(data)), 2, nil

	default:
		if code.IsString() {
			if len(data) < 8 {
				return nil, 0, errShortBuffer()
			}
			length := binary.LittleEndian.Uint64(data)
			if uint64(len(data)-8) < length {
				return nil, 0, errShortBuffer()
			}
			payload := data[8 : 8+length]
			if unsigned { // negated code: binary payload
				return append([]byte(nil), payload...), 8 + int(length), nil
			}
			return string(payload), 8 + int(length), nil
		}
		return nil, 0, errUnsupportedTypeCode(code)
	}
}

// DumpRow encodes rowIDs and rows into the ROWDAT_1 row-oriented layout
// (§4.3.2): row_id, then per column an is_null byte and either a
// fixed-width numeric payload or an 8-byte length plus raw bytes.
func DumpRow(colspec []ColSpec, rowIDs []uint64, rows [][]interface{}) ([]byte, error) {
	if len(rowIDs) != len(rows) {
		return nil, errShortBuffer()
	}

	w := newWriter(64 * len(rows))
	for r, row := range rows {
		if len(row) != len(colspec) {
			return nil, errShortBuffer()
		}

		var rowIDBuf [8]byte
		binary.LittleEndian.PutUint64(rowIDBuf[:], rowIDs[r])
		w.write(rowIDBuf[:])

		for i, spec := range colspec {
			code, unsigned := spec.resolved()
			if err := checkSupported(code); err != nil {
				return nil, err
			}

			v := row[i]
			if v == nil {
				w.writeByte(1)
				if err := writeZeroCell(w, code); err != nil {
					return nil, err
				}
				continue
			}

			w.writeByte(0)
			if err := writeCell(w, code, unsigned, v); err != nil {
				return nil, err
			}
		}
	}
	return w.bytes(), nil
}

func writeZeroCell(w *writer, code coltype.Code) error {
	switch code {
	case coltype.Tiny:
		w.writeByte(0)
	case coltype.Short, coltype.Year:
		w.write(make([]byte, 2))
	case coltype.Long, coltype.Int24, coltype.Float:
		w.write(make([]byte, 4))
	case coltype.LongLong, coltype.Double:
		w.write(make([]byte, 8))
	default:
		if code.IsString() {
			w.write(make([]byte, 8)) // length = 0
			return nil
		}
		return errUnsupportedTypeCode(code)
	}
	return nil
}

func writeCell(w *writer, code coltype.Code, unsigned bool, v interface{}) error {
	switch code {
	case coltype.Tiny:
		i, err := asInt64(v)
		if err != nil {
			return err
		}
		w.writeByte(byte(int8(i)))

	case coltype.Short, coltype.Year:
		i, err := asInt64(v)
		if err != nil {
			return err
		}
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(i))
		w.write(b[:])

	case coltype.Long, coltype.Int24:
		i, err := asInt64(v)
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(i))
		w.write(b[:])

	case coltype.LongLong:
		i, err := asInt64(v)
		if err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(i))
		w.write(b[:])

	case coltype.Float:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(f)))
		w.write(b[:])

	case coltype.Double:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		w.write(b[:])

	default:
		if code.IsString() {
			payload, err := asBytes(v)
			if err != nil {
				return err
			}
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], uint64(len(payload)))
			w.write(b[:])
			w.write(payload)
			return nil
		}
		return errUnsupportedTypeCode(code)
	}
	return nil
}

func asInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("rowdat1: cannot encode %T as an integer column", v)
	}
}

func asFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("rowdat1: cannot encode %T as a floating point column", v)
	}
}

func asBytes(v interface{}) ([]byte, error) {
	switch s := v.(type) {
	case []byte:
		return s, nil
	case string:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("rowdat1: cannot encode %T as a string/blob column", v)
	}
}
