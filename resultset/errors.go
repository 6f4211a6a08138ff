// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package resultset

import "github.com/pkg/errors"

// OperationalError is raised for transport-level failures that leave the
// connection unusable: short reads, lost connections, read timeouts. The
// caller must close the underlying byte source (§4.1, §7).
type OperationalError struct {
	msg string
	err error
}

func (e *OperationalError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *OperationalError) Unwrap() error { return e.err }

func newOperationalError(msg string, cause error) error {
	return errors.WithStack(&OperationalError{msg: msg, err: cause})
}

// InternalError is raised for protocol violations that are not a lost
// connection (e.g. a bad packet sequence number) — §4.1.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string { return e.msg }

func newInternalError(msg string) error {
	return errors.WithStack(&InternalError{msg: msg})
}

var (
	errLostConnection = "Lost connection to SingleStoreDB server during query"
	errBadSequence    = "Packet sequence number wrong"
)
