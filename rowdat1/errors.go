// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowdat1

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// errShortBuffer is raised whenever a decode step needs more bytes than
// remain in the input buffer (§4.3.1 "Bounds check").
func errShortBuffer() error {
	return errors.New("data length does not align with specified column values")
}

// errRange wraps coltype.RangeError with a stack trace and logs it, per
// the ambient-stack logging convention (SPEC_FULL.md §10): a range-check
// failure is noteworthy enough to log before surfacing to the caller,
// the same way the teacher logs fatal transport errors in packets.go.
func errRange(err error) error {
	logrus.WithField("component", "rowdat1.column").Warn(err.Error())
	return errors.WithStack(err)
}

// errUnsupportedSourceKind is raised when a DumpColumn source column
// carries a format tag the codec doesn't recognise (§4.3.4 "Unsupported
// source numeric kinds... raise ValueError").
func errUnsupportedSourceKind(tag byte) error {
	return fmt.Errorf("unsupported source column format tag %q", tag)
}
