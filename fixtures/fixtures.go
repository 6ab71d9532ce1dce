// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bitmark-inc/disperse/storage"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// deterministic test accounts
var (
	Key1 = mustKey("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	Key2 = mustKey("8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63")
	Key3 = mustKey("c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3")

	Account1 = crypto.PubkeyToAddress(Key1.PublicKey)
	Account2 = crypto.PubkeyToAddress(Key2.PublicKey)
	Account3 = crypto.PubkeyToAddress(Key3.PublicKey)
)

func mustKey(s string) *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(s)
	if nil != err {
		panic(err)
	}
	return key
}

// Address - a fixed address with every byte set to b
func Address(b byte) common.Address {
	var a common.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestStorage - logger and an empty database in the testing directory
func SetupTestStorage() error {
	SetupTestLogger()
	return storage.Initialise(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
}

func TeardownTestStorage() {
	storage.Finalise()
	TeardownTestLogger()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
