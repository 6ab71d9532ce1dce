// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/fault"
)

// Entry - one scheduled payment
type Entry struct {
	Claimer common.Address `json:"claimer"`
	Amount  *uint256.Int   `json:"amount"`
}

// Info - what the owner supplies to create a pool
type Info struct {
	Name        string         `json:"name"`
	Distributor common.Address `json:"distributor"`
	Asset       common.Address `json:"asset"` // zero address for native
	Start       uint64         `json:"start"`
	Deadline    uint64         `json:"deadline"`
	Entries     []Entry        `json:"entries"` // claimers strictly increasing
}

// Pool - a stored pool
type Pool struct {
	Info
	Status  Status       `json:"status"`
	Total   *uint256.Int `json:"total"`
	Funded  *uint256.Int `json:"funded"`
	Claimed *uint256.Int `json:"claimed"`
}

// Validate - check a schedule can be created at time now
//
// returns the total of all entries
func (info *Info) Validate(now uint64) (*uint256.Int, error) {
	if info.Start >= info.Deadline {
		return nil, fault.ErrInvalidTimeWindow
	}
	if info.Start <= now {
		return nil, fault.ErrStartNotInFuture
	}
	if 0 == len(info.Entries) {
		return nil, fault.ErrEmptyClaimers
	}

	first := info.Entries[0]
	if (common.Address{}) == first.Claimer {
		return nil, fault.ErrZeroClaimer
	}
	if nil == first.Amount || first.Amount.IsZero() {
		return nil, fault.ErrZeroAmount
	}
	total := new(uint256.Int).Set(first.Amount)

	for i := 1; i < len(info.Entries); i += 1 {
		e := info.Entries[i]
		if bytes.Compare(info.Entries[i-1].Claimer[:], e.Claimer[:]) >= 0 {
			return nil, fault.ErrClaimerNotAscending
		}
		if nil == e.Amount || e.Amount.IsZero() {
			return nil, fault.ErrZeroAmount
		}
		var err error
		total, err = amount.Add(total, e.Amount)
		if nil != err {
			return nil, err
		}
	}
	return total, nil
}

// Active - true while claims are allowed by time: start < now < deadline
func (p *Pool) Active(now uint64) bool {
	return p.Start < now && now < p.Deadline
}

// InWindow - true if now is within [start, deadline], where cancel is refused
func (p *Pool) InWindow(now uint64) bool {
	return p.Start <= now && now <= p.Deadline
}

// Refundable - funded value that has not been claimed
func (p *Pool) Refundable() *uint256.Int {
	if nil == p.Funded || nil == p.Claimed || p.Claimed.Gt(p.Funded) {
		return amount.Zero()
	}
	return new(uint256.Int).Sub(p.Funded, p.Claimed)
}

// empty pool for an unused id
func none() *Pool {
	return &Pool{
		Status:  None,
		Total:   amount.Zero(),
		Funded:  amount.Zero(),
		Claimed: amount.Zero(),
	}
}
