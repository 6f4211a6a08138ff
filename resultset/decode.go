// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package resultset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/singlestore-labs/rowcodec/coltype"
)

// cellText produces the text (or raw bytes) handed to converters and to
// the JSON/string fast path, applying the column's encoding and
// encoding-errors policy. Character-set conversion tables themselves are
// out of scope (§1); only UTF-8 and a "binary passthrough" are natively
// supported, which covers SingleStoreDB's default client encoding.
func cellText(col ColumnMeta, raw []byte, encodingErrors string) ([]byte, error) {
	if col.Binary() {
		return raw, nil
	}
	if encodingErrors == "" || encodingErrors == "strict" {
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("invalid %s byte sequence in column %q", col.Encoding, col.Name)
		}
	}
	// "replace"/"ignore" policies degrade to returning the raw bytes:
	// utf8.Valid already told us whether strict mode would have failed;
	// non-strict policies accept the bytes regardless.
	return raw, nil
}

// decodeCell implements the per-column dispatch of §4.2.2 step 4, for a
// non-NULL, non-converter cell.
func decodeCell(col ColumnMeta, raw []byte, opts Options) (interface{}, error) {
	switch col.Type {
	case coltype.Decimal, coltype.NewDecimal:
		return parseDecimal(raw)

	case coltype.Tiny, coltype.Short, coltype.Long, coltype.LongLong, coltype.Int24:
		return decodeInteger(raw, col.Unsigned())

	case coltype.Float:
		v, err := strconv.ParseFloat(string(raw), 32)
		if err != nil {
			return nil, err
		}
		return float32(v), nil

	case coltype.Double:
		return strconv.ParseFloat(string(raw), 64)

	case coltype.Date, coltype.NewDate:
		return decodeDateCell(col, raw, opts)

	case coltype.DateTime, coltype.Timestamp:
		return decodeDateTimeCell(col, raw, opts)

	case coltype.Time:
		return decodeTimeCell(col, raw, opts)

	case coltype.Year:
		return strconv.ParseInt(string(raw), 10, 64)

	case coltype.Bit, coltype.JSON, coltype.Enum, coltype.Set,
		coltype.VarChar, coltype.VarString, coltype.String, coltype.Geometry,
		coltype.TinyBlob, coltype.MediumBlob, coltype.LongBlob, coltype.Blob:
		text, err := cellText(col, raw, opts.EncodingErrors)
		if err != nil {
			return nil, err
		}
		if col.Type == coltype.JSON && opts.ParseJSON && !col.Binary() {
			var v interface{}
			if err := json.Unmarshal(text, &v); err != nil {
				return nil, err
			}
			return v, nil
		}
		if col.Binary() {
			return text, nil
		}
		return string(text), nil

	default:
		return nil, fmt.Errorf("unknown column type code %d", col.Type)
	}
}

func decodeInteger(raw []byte, unsigned bool) (interface{}, error) {
	s := string(raw)
	if unsigned {
		return strconv.ParseUint(s, 10, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

func invalidValueOrRaw(col ColumnMeta, raw []byte) interface{} {
	if col.HasInvalidVal {
		return col.InvalidValue
	}
	return string(raw)
}

func decodeDateCell(col ColumnMeta, raw []byte, opts Options) (interface{}, error) {
	v, zero, ok := ParseDate(raw)
	if zero {
		return nil, nil
	}
	if !ok {
		return invalidValueOrRaw(col, raw), nil
	}
	return v.Time, nil
}

func decodeDateTimeCell(col ColumnMeta, raw []byte, opts Options) (interface{}, error) {
	v, zero, ok := ParseDateTime(raw)
	if zero {
		return nil, nil
	}
	if !ok {
		return invalidValueOrRaw(col, raw), nil
	}
	return v.Time, nil
}

func decodeTimeCell(col ColumnMeta, raw []byte, opts Options) (interface{}, error) {
	v, zero, ok := ParseTime(raw)
	if zero {
		return nil, nil
	}
	if !ok {
		return invalidValueOrRaw(col, raw), nil
	}
	return v.Duration, nil
}
