// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package resultset

import (
	"encoding/binary"
	"errors"
	"io"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/singlestore-labs/rowcodec/internal/atomic"
)

// maxPacketPayload is the MySQL wire-protocol continuation threshold:
// 0xFFFFFF, one less than 2^24 (§6.1).
const maxPacketPayload = 0xFFFFFF

// ByteSource is the blocking byte source C1 pulls from. It is the
// caller-supplied collaborator named in §6.2 (`_rfile.read(n)`).
type ByteSource interface {
	io.Reader
	io.Closer
}

// DeadlineSource is implemented by byte sources that support a read
// deadline, mirroring `_sock.settimeout(t)` from §6.2. Sources that don't
// implement it (e.g. an in-memory test fixture) simply never time out.
type DeadlineSource interface {
	SetReadDeadline(t time.Time) error
}

// ErrorMapper maps a MySQL error-packet payload (first byte 0xFF) to a
// typed exception. It is the `_raise_mysql_exception` hook from §6.2.
type ErrorMapper func(payload []byte) error

// Transport is C1: it reassembles MySQL wire packets from a ByteSource,
// tracks the sequence-number discipline, and recognises EOF/error
// packets. One Transport is owned by exactly one result-set decoder at a
// time (§5).
type Transport struct {
	Source      ByteSource
	ReadTimeout time.Duration
	RaiseError  ErrorMapper
	Log         *logrus.Entry

	nextSeqID uint8
	closing   atomic.Bool
}

// NextSeqID returns the next expected packet sequence number.
func (t *Transport) NextSeqID() uint8 { return t.nextSeqID }

// SetNextSeqID resets the sequence counter, e.g. when a new command is
// about to be written (mirrors `_next_seq_id` being connection-owned and
// reset to 0 before each command in the teacher's `writeCommandPacket`).
func (t *Transport) SetNextSeqID(v uint8) { t.nextSeqID = v }

// Cancel unblocks a ReadBytes call in progress from another goroutine by
// closing the underlying source (§5 "Cancellation and timeouts").
func (t *Transport) Cancel() {
	if t.closing.TrySet(true) {
		_ = t.Source.Close()
	}
}

func (t *Transport) logger() *logrus.Entry {
	if t.Log != nil {
		return t.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// ReadBytes performs a blocking read of exactly n bytes, honouring
// ReadTimeout (re-applied before every read) and retrying transparently
// on EINTR. Any other read error forces the source closed. When the
// error is io.EOF, a timeout, or arrives before all n bytes are in, it is
// logged and surfaces as OperationalError wrapping the source's error.
// Errors are not classified further: a non-I/O error on a short read is
// wrapped the same way, and only an error returned together with the
// last of the n bytes is passed through unwrapped (§4.1).
func (t *Transport) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		if ds, ok := t.Source.(DeadlineSource); ok && t.ReadTimeout > 0 {
			_ = ds.SetReadDeadline(time.Now().Add(t.ReadTimeout))
		}

		m, err := t.Source.Read(buf[read:])
		read += m

		if err == nil {
			continue
		}

		if errors.Is(err, syscall.EINTR) {
			continue
		}

		_ = t.Source.Close()

		if err == io.EOF || isNetTimeout(err) || read < n {
			t.logger().WithFields(logrus.Fields{
				"component": "resultset.packet",
				"requested": n,
				"read":      read,
			}).Error("lost connection during query")
			return nil, newOperationalError(errLostConnection, err)
		}

		// The error came with the last of the n bytes: return it unwrapped.
		return nil, err
	}
	return buf, nil
}

func isNetTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var te timeout
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}

// ReadPacket reads one logical MySQL packet, concatenating continuation
// fragments (payload length == 0xFFFFFF) into a single payload (§4.1).
func (t *Transport) ReadPacket() ([]byte, error) {
	var payload []byte

	for {
		header, err := t.ReadBytes(4)
		if err != nil {
			return nil, err
		}

		length := uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16
		seq := header[3]

		if seq != t.nextSeqID {
			_ = t.Source.Close()
			if seq == 0 {
				return nil, newOperationalError(errLostConnection, nil)
			}
			return nil, newInternalError(errBadSequence)
		}
		t.nextSeqID = uint8(uint16(seq) + 1)

		chunk, err := t.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		payload = append(payload, chunk...)

		if length < maxPacketPayload {
			return payload, nil
		}
		// length == 0xFFFFFF: another packet continues this payload.
	}
}

// IsErrorPacket reports whether payload is a MySQL error packet (first
// byte 0xFF).
func IsErrorPacket(payload []byte) bool {
	return len(payload) > 0 && payload[0] == 0xFF
}

// IsEOFPacket reports whether payload is an End-Of-Result packet: first
// byte 0xFE and length strictly less than 9 (§4.1).
func IsEOFPacket(payload []byte) bool {
	return len(payload) > 0 && payload[0] == 0xFE && len(payload) < 9
}

// EOFInfo is the decoded content of an EOF packet.
type EOFInfo struct {
	WarningCount uint16
	ServerStatus uint16
	HasMore      bool
}

// moreResultsFlag is bit 0x08 of server_status: "more result sets
// follow" (§4.1, §6.1).
const moreResultsFlag = 0x0008

// ParseEOFPacket decodes the warning count and server status following
// the 0xFE type byte.
func ParseEOFPacket(payload []byte) (EOFInfo, error) {
	if !IsEOFPacket(payload) {
		return EOFInfo{}, newInternalError("not an EOF packet")
	}
	if len(payload) < 5 {
		return EOFInfo{}, newInternalError("truncated EOF packet")
	}
	warn := binary.LittleEndian.Uint16(payload[1:3])
	status := binary.LittleEndian.Uint16(payload[3:5])
	return EOFInfo{
		WarningCount: warn,
		ServerStatus: status,
		HasMore:      status&moreResultsFlag != 0,
	}, nil
}

// HandleErrorPacket hands the raw error-packet payload to the configured
// ErrorMapper, or returns a generic InternalError if none was configured.
func (t *Transport) HandleErrorPacket(payload []byte) error {
	if t.RaiseError != nil {
		return t.RaiseError(payload)
	}
	return newInternalError("server returned an error packet")
}
