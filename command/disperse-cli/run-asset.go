// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/rpc/request"
)

func runApprove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	asset, err := parseAsset(c.String("asset"))
	if nil != err {
		return err
	}
	if chain.Native == asset {
		return fault.ErrNativeAssetNotAllowed
	}
	value, err := checkAmount(c.String("amount"))
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

	spender, err := ledgerAddress(client)
	if nil != err {
		return err
	}
	if s := strings.TrimSpace(c.String("spender")); "" != s {
		spender, err = parseAddress(s)
		if nil != err {
			return err
		}
	}

	reply, err := client.Submit(key, nil, request.Approve, request.AssetParams{
		Asset:   asset,
		Account: spender,
		Amount:  value,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	asset, err := parseAsset(c.String("asset"))
	if nil != err {
		return err
	}
	to, err := parseAddress(c.String("to"))
	if nil != err {
		return err
	}
	value, err := checkAmount(c.String("amount"))
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

	reply, err := client.Submit(key, nil, request.Transfer, request.AssetParams{
		Asset:   asset,
		Account: to,
		Amount:  value,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runWrap(c *cli.Context) error {
	return wrapOrUnwrap(c, request.Wrap)
}

func runUnwrap(c *cli.Context) error {
	return wrapOrUnwrap(c, request.Unwrap)
}

func wrapOrUnwrap(c *cli.Context, method string) error {

	m := c.App.Metadata["config"].(*metadata)

	value, err := checkAmount(c.String("amount"))
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

	reply, err := client.Submit(key, nil, method, request.AssetParams{Amount: value})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runPermit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	asset, err := parseAsset(c.String("asset"))
	if nil != err {
		return err
	}
	if chain.Native == asset {
		return fault.ErrNativeAssetNotAllowed
	}
	value, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}
	expiry := uint64(time.Now().Unix()) + c.Uint64("expiry")

	key, err := getKey(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	spender, err := ledgerAddress(client)
	if nil != err {
		return err
	}

	permit, err := client.Permit(key, spender, asset, value, expiry)
	if nil != err {
		return err
	}

	if !c.Bool("submit") {
		return printJson(m.w, permit)
	}

	reply, err := client.Submit(key, nil, request.Permit, request.PermitParams{
		Permits: []ledger.Permit{*permit},
	})
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}
