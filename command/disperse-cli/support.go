// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/command/disperse-cli/keyfile"
	"github.com/bitmark-inc/disperse/command/disperse-cli/rpccalls"
	"github.com/bitmark-inc/disperse/fault"
)

const (
	nativeName            = "native"
	defaultPermitLifetime = 3600 // seconds
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// decrypt the key file, prompting for a password if none was given
func getKey(m *metadata) (*ecdsa.PrivateKey, error) {
	f, err := keyfile.Load(m.keyFile)
	if nil != err {
		return nil, err
	}

	password := m.password
	if "" == password {
		password, err = promptCheckPasswordReader()
		if nil != err {
			return nil, err
		}
	}

	return f.Decrypt(password)
}

// own account from the key file, no password needed
func getAccount(m *metadata) (common.Address, error) {
	f, err := keyfile.Load(m.keyFile)
	if nil != err {
		return common.Address{}, err
	}
	return f.Address, nil
}

func connect(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}

// "native" or blank is the zero address
func parseAsset(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if "" == s || nativeName == strings.ToLower(s) {
		return chain.Native, nil
	}
	return parseAddress(s)
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fault.ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// address from flag, own account if blank
func addressOrSelf(m *metadata, s string) (common.Address, error) {
	if "" == strings.TrimSpace(s) {
		return getAccount(m)
	}
	return parseAddress(s)
}

func checkAmount(s string) (*uint256.Int, error) {
	if "" == s {
		return nil, fault.ErrInvalidAmount
	}
	return amount.Parse(s)
}

func checkPoolId(c *cli.Context) (uint64, error) {
	id := c.Uint64("id")
	if 0 == id {
		return 0, fault.ErrPoolNotFound
	}
	return id, nil
}

// the custody address of the ledger
func ledgerAddress(client *rpccalls.Client) (common.Address, error) {
	info, err := client.Info()
	if nil != err {
		return common.Address{}, err
	}
	return parseAddress(info.Ledger)
}

// decimals of an asset as reported by the server, native uses 18
func assetDecimals(client *rpccalls.Client, asset common.Address) int32 {
	if chain.Native == asset {
		return 18
	}
	info, err := client.Info()
	if nil != err {
		return 0
	}
	for _, a := range info.Assets {
		if common.HexToAddress(a.Address) == asset {
			return a.Decimals
		}
	}
	return 0
}

// own address of key
func address(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}

// decimal string of a possibly missing amount
func dec(v *uint256.Int) string {
	if nil == v {
		return "0"
	}
	return v.Dec()
}
