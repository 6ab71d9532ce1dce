// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/rpc/request"
)

// one line of a disperse file
type payment struct {
	Recipient common.Address `json:"recipient"`
	Amount    *uint256.Int   `json:"amount"`
}

// payments from the file then from ADDRESS:AMOUNT arguments
func readPayments(fileName string, arguments []string) ([]common.Address, []*uint256.Int, error) {
	payments := []payment{}

	if "" != fileName {
		data, err := os.ReadFile(fileName)
		if nil != err {
			return nil, nil, err
		}
		err = json.Unmarshal(data, &payments)
		if nil != err {
			return nil, nil, err
		}
	}

	for _, a := range arguments {
		s := strings.SplitN(a, ":", 2)
		if 2 != len(s) {
			return nil, nil, fault.ErrMissingParameters
		}
		recipient, err := parseAddress(s[0])
		if nil != err {
			return nil, nil, err
		}
		value, err := checkAmount(s[1])
		if nil != err {
			return nil, nil, err
		}
		payments = append(payments, payment{Recipient: recipient, Amount: value})
	}

	if 0 == len(payments) {
		return nil, nil, fault.ErrMissingParameters
	}

	recipients := make([]common.Address, len(payments))
	amounts := make([]*uint256.Int, len(payments))
	for i, p := range payments {
		if nil == p.Amount {
			return nil, nil, fault.ErrInvalidAmount
		}
		recipients[i] = p.Recipient
		amounts[i] = p.Amount
	}
	return recipients, amounts, nil
}

func runDisperse(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	asset, err := parseAsset(c.String("asset"))
	if nil != err {
		return err
	}

	recipients, amounts, err := readPayments(c.String("file"), c.Args())
	if nil != err {
		return err
	}
	total, err := amount.Sum(amounts)
	if nil != err {
		return err
	}

	key, err := getKey(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	params := request.DisperseParams{
		Asset:      asset,
		Recipients: recipients,
		Amounts:    amounts,
	}

	if chain.Native == asset {
		reply, err := client.Submit(key, total, request.DisperseNative, params)
		if nil != err {
			return err
		}
		return printJson(m.w, reply)
	}

	if c.Bool("permit") {
		spender, err := ledgerAddress(client)
		if nil != err {
			return err
		}
		params.Permit, err = client.Permit(key, spender, asset, total, uint64(time.Now().Unix())+defaultPermitLifetime)
		if nil != err {
			return err
		}
	}

	method := request.DisperseToken
	if c.Bool("simple") {
		method = request.DisperseTokenSimple
	}

	reply, err := client.Submit(key, nil, method, params)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}
