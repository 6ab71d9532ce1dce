// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/pool"
)

// all methods accepted by Ledger.Submit
const (
	DisperseNative      = "disperseNative"
	DisperseToken       = "disperseToken"
	DisperseTokenSimple = "disperseTokenSimple"
	BatchDisperse       = "batchDisperse"
	Permit              = "permit"
	Create              = "create"
	BatchCreate         = "batchCreate"
	Fund                = "fund"
	BatchFund           = "batchFund"
	Claim               = "claim"
	BatchClaim          = "batchClaim"
	Distribute          = "distribute"
	BatchDistribute     = "batchDistribute"
	Cancel              = "cancel"
	Execute             = "execute"

	// asset operations on the caller's own balances
	Approve  = "approve"
	Transfer = "transfer"
	Wrap     = "wrap"
	Unwrap   = "unwrap"
)

// DisperseParams - disperseNative, disperseToken and
// disperseTokenSimple, Asset is ignored for native
type DisperseParams struct {
	Asset      common.Address   `json:"asset"`
	Recipients []common.Address `json:"recipients"`
	Amounts    []*uint256.Int   `json:"amounts"`
	Permit     *ledger.Permit   `json:"permit,omitempty"`
}

// BatchDisperseParams - batchDisperse
type BatchDisperseParams struct {
	Groups  []ledger.Group  `json:"groups"`
	Permits []ledger.Permit `json:"permits,omitempty"`
}

// PermitParams - permit
type PermitParams struct {
	Permits []ledger.Permit `json:"permits"`
}

// CreateParams - create
type CreateParams struct {
	Info   pool.Info      `json:"info"`
	Fund   bool           `json:"fund"`
	Permit *ledger.Permit `json:"permit,omitempty"`
}

// BatchCreateParams - batchCreate
type BatchCreateParams struct {
	Requests []ledger.CreateRequest `json:"requests"`
}

// PoolParams - fund and distribute
type PoolParams struct {
	Id     uint64         `json:"id"`
	Permit *ledger.Permit `json:"permit,omitempty"`
}

// PoolsParams - batchFund, batchDistribute and cancel
type PoolsParams struct {
	Ids []uint64 `json:"ids"`
}

// ClaimParams - claim
type ClaimParams struct {
	Id    uint64 `json:"id"`
	Index uint64 `json:"index"`
}

// BatchClaimParams - batchClaim
type BatchClaimParams struct {
	Ids     []uint64 `json:"ids"`
	Indices []uint64 `json:"indices"`
}

// ExecuteParams - execute
type ExecuteParams struct {
	Target common.Address `json:"target"`
	Value  *uint256.Int   `json:"value,omitempty"`
	Data   hexutil.Bytes  `json:"data,omitempty"`
}

// AssetParams - approve and transfer use Account as spender and
// recipient, wrap and unwrap only need Amount
type AssetParams struct {
	Asset   common.Address `json:"asset"`
	Account common.Address `json:"account"`
	Amount  *uint256.Int   `json:"amount"`
}
