// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

// Command rowdatctl loads a colspec fixture and round-trips a handful of
// sample rows through the ROWDAT_1 codec, logging each stage. It exists
// to exercise package rowdat1 end to end outside of a live connection,
// the way a one-off diagnostic tool would.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/singlestore-labs/rowcodec/rowdat1"
)

func main() {
	fixturePath := flag.String("fixture", "cmd/rowdatctl/fixture.toml", "colspec fixture file")
	flag.Parse()

	log := logrus.New()

	f, err := loadFixture(*fixturePath)
	if err != nil {
		log.WithError(err).Fatal("loading fixture")
	}

	colspec := make([]rowdat1.ColSpec, len(f.Columns))
	for i, c := range f.Columns {
		code := c.Code
		if c.Unsigned {
			code = -code
		}
		colspec[i] = rowdat1.ColSpec{Name: c.Name, Code: code}
	}

	rowIDs := []uint64{1, 2}
	rows := [][]interface{}{
		{int64(100), "alpha"},
		{int64(200), "beta"},
	}

	buf, err := rowdat1.DumpRow(colspec, rowIDs, rows)
	if err != nil {
		log.WithError(err).Fatal("dumping rows")
	}
	log.WithFields(logrus.Fields{"bytes": len(buf), "rows": len(rows)}).Info("encoded ROWDAT_1 batch")

	gotIDs, gotRows, err := rowdat1.LoadRow(colspec, buf)
	if err != nil {
		log.WithError(err).Fatal("loading rows")
	}
	log.WithFields(logrus.Fields{"row_ids": gotIDs, "rows": gotRows}).Info("decoded ROWDAT_1 batch")
}
