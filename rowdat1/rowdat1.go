// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

// Package rowdat1 implements the ROWDAT_1 binary row-batch codec (C3):
// a length-prefixed, per-row, per-column binary layout with an explicit
// NULL marker, used to exchange table batches with remote UDF servers
// (§3.3, §4.3). It is independent of the text-protocol decoder in
// package resultset; it operates purely on in-memory byte buffers.
package rowdat1

import (
	"fmt"

	"github.com/singlestore-labs/rowcodec/coltype"
)

// ColSpec is one (name, type code) entry of an ordered colspec (§4.3.1).
// A negative Code means "unsigned integer" for integer types and
// "binary payload" for string/blob types (§3.1).
type ColSpec struct {
	Name string
	Code int
}

func (c ColSpec) resolved() (coltype.Code, bool) {
	return coltype.Abs(c.Code)
}

func checkSupported(code coltype.Code) error {
	if code.Unsupported() {
		return errUnsupportedTypeCode(code)
	}
	return nil
}

func errUnsupportedTypeCode(code coltype.Code) error {
	return fmt.Errorf("unsupported ROWDAT_1 column type code %d", int(code))
}
