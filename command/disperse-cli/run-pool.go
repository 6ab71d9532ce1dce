// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/command/disperse-cli/rpccalls"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/disperse/rpc/request"
)

// read a schedule, entries are put in claimer order
func readSchedule(fileName string) (*pool.Info, error) {
	if "" == fileName {
		return nil, fault.ErrMissingParameters
	}

	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	info := &pool.Info{}
	err = json.Unmarshal(data, info)
	if nil != err {
		return nil, err
	}

	sort.SliceStable(info.Entries, func(i, j int) bool {
		return bytes.Compare(info.Entries[i].Claimer[:], info.Entries[j].Claimer[:]) < 0
	})
	return info, nil
}

// value and permit needed to pay total of asset into the ledger
func funding(c *cli.Context, client *rpccalls.Client, key *ecdsa.PrivateKey, a common.Address, total *uint256.Int) (*uint256.Int, *ledger.Permit, error) {
	if chain.Native == a {
		return total, nil, nil
	}
	if !c.Bool("permit") {
		return nil, nil, nil
	}

	spender, err := ledgerAddress(client)
	if nil != err {
		return nil, nil, err
	}
	permit, err := client.Permit(key, spender, a, total, uint64(time.Now().Unix())+defaultPermitLifetime)
	return nil, permit, err
}

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	info, err := readSchedule(c.String("file"))
	if nil != err {
		return err
	}
	total, err := info.Validate(uint64(time.Now().Unix()))
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

	params := request.CreateParams{
		Info: *info,
		Fund: c.Bool("fund"),
	}

	var value *uint256.Int
	if params.Fund {
		value, params.Permit, err = funding(c, client, key, info.Asset, total)
		if nil != err {
			return err
		}
	}

	reply, err := client.Submit(key, value, request.Create, params)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runFund(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkPoolId(c)
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

	p, err := client.Pool(id)
	if nil != err {
		return err
	}
	if pool.Initialised != p.Pool.Status {
		return fault.ErrPoolNotInitialised
	}

	params := request.PoolParams{Id: id}
	value, permit, err := funding(c, client, key, p.Pool.Asset, p.Pool.Total)
	if nil != err {
		return err
	}
	params.Permit = permit

	reply, err := client.Submit(key, value, request.Fund, params)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runClaim(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkPoolId(c)
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

	index := c.Int("index")
	if index < 0 {
		p, err := client.Pool(id)
		if nil != err {
			return err
		}
		self := address(key)
		for i, e := range p.Pool.Entries {
			if e.Claimer == self {
				index = i
				break
			}
		}
		if index < 0 {
			return fault.ErrNotClaimer
		}
	}

	reply, err := client.Submit(key, nil, request.Claim, request.ClaimParams{
		Id:    id,
		Index: uint64(index),
	})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runDistribute(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkPoolId(c)
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

	reply, err := client.Submit(key, nil, request.Distribute, request.PoolParams{Id: id})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runCancel(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 0 == len(c.Args()) {
		return fault.ErrMissingParameters
	}
	ids := make([]uint64, len(c.Args()))
	for i, a := range c.Args() {
		id, err := strconv.ParseUint(a, 10, 64)
		if nil != err || 0 == id {
			return fault.ErrPoolNotFound
		}
		ids[i] = id
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

	reply, err := client.Submit(key, nil, request.Cancel, request.PoolsParams{Ids: ids})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}
