// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package resultset

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Decimal is a database/sql-compatible wrapper around the arbitrary
// precision decimal value a DECIMAL/NEWDECIMAL text cell decodes to
// (§4.2.2). The teacher's own decimal.go was a bare `type Decimal
// string`; backing it with shopspring/decimal gives callers real
// arithmetic instead of a string they have to parse themselves.
type Decimal struct {
	decimal.Decimal
}

// Value implements driver.Valuer.
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// parseDecimal decodes a DECIMAL/NEWDECIMAL text cell per §4.2.2: "decode
// as text, pass to the host's arbitrary-precision decimal constructor."
func parseDecimal(raw []byte) (Decimal, error) {
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d}, nil
}
