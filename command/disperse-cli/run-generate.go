// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/command/disperse-cli/keyfile"
)

type generateReply struct {
	Account string `json:"account"`
	File    string `json:"file"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var key *ecdsa.PrivateKey
	var err error
	if s := strings.TrimPrefix(strings.TrimSpace(c.String("private-key")), "0x"); "" != s {
		key, err = crypto.HexToECDSA(s)
	} else {
		key, err = crypto.GenerateKey()
	}
	if nil != err {
		return err
	}

	password := m.password
	if "" == password {
		password, err = promptPasswordReader()
		if nil != err {
			return err
		}
	}

	f, err := keyfile.Encrypt(key, password)
	if nil != err {
		return err
	}

	err = keyfile.Save(m.keyFile, f)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "saved key for: %s\n", f.Address.Hex())
	}

	return printJson(m.w, generateReply{
		Account: f.Address.Hex(),
		File:    m.keyFile,
	})
}
