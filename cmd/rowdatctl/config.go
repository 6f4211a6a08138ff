// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// columnFixture mirrors one row of a TOML colspec fixture: a column name,
// its MySQL/SingleStoreDB type code, and whether it carries the
// unsigned/binary sign bit that package rowdat1 expects folded into a
// negative code.
type columnFixture struct {
	Name     string `toml:"name"`
	Code     int    `toml:"code"`
	Unsigned bool   `toml:"unsigned"`
}

type fixture struct {
	Columns []columnFixture `toml:"column"`
}

// loadFixture reads a colspec fixture file in the shape documented in
// cmd/rowdatctl/fixture.toml.
func loadFixture(path string) (fixture, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return fixture{}, errors.Wrapf(err, "loading fixture %s", path)
	}

	var f fixture
	if err := tree.Unmarshal(&f); err != nil {
		return fixture{}, errors.Wrap(err, "decoding fixture")
	}
	return f, nil
}
