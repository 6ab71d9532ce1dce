// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/amount"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.Info()
	if nil != err {
		return err
	}

	return printJson(m.w, info)
}

type balanceReply struct {
	Asset     string `json:"asset"`
	Account   string `json:"account"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	asset, err := parseAsset(c.String("asset"))
	if nil != err {
		return err
	}
	account, err := addressOrSelf(m, c.String("account"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	value, err := client.Balance(asset, account)
	if nil != err {
		return err
	}

	return printJson(m.w, balanceReply{
		Asset:     asset.Hex(),
		Account:   account.Hex(),
		Amount:    dec(value),
		Formatted: amount.Format(value, assetDecimals(client, asset)),
	})
}

func runPool(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	if id := c.Uint64("id"); 0 != id {
		reply, err := client.Pool(id)
		if nil != err {
			return err
		}
		return printJson(m.w, reply)
	}

	reply, err := client.Pools(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

type claimedReply struct {
	Id      uint64 `json:"id"`
	Claimer string `json:"claimer"`
	Amount  string `json:"amount"`
}

func runClaimed(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkPoolId(c)
	if nil != err {
		return err
	}
	claimer, err := addressOrSelf(m, c.String("account"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	value, err := client.Claimed(id, claimer)
	if nil != err {
		return err
	}

	return printJson(m.w, claimedReply{
		Id:      id,
		Claimer: claimer.Hex(),
		Amount:  dec(value),
	})
}

func runEvents(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Events(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}
