// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submit

import (
	"context"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/rpc/request"
)

func disperseNative(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.DisperseParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.DisperseNative(ctx, in.call, p.Recipients, p.Amounts)
}

func disperseToken(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.DisperseParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	if nil != p.Permit {
		return s.Ledger.DisperseTokenWithPermit(ctx, in.call, p.Asset, p.Recipients, p.Amounts, *p.Permit)
	}
	return s.Ledger.DisperseToken(ctx, in.call, p.Asset, p.Recipients, p.Amounts)
}

func disperseTokenSimple(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.DisperseParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	if nil != p.Permit {
		return s.Ledger.DisperseTokenSimpleWithPermit(ctx, in.call, p.Asset, p.Recipients, p.Amounts, *p.Permit)
	}
	return s.Ledger.DisperseTokenSimple(ctx, in.call, p.Asset, p.Recipients, p.Amounts)
}

func batchDisperse(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.BatchDisperseParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	if 0 != len(p.Permits) {
		return s.Ledger.BatchDisperseWithPermits(ctx, in.call, p.Groups, p.Permits)
	}
	return s.Ledger.BatchDisperse(ctx, in.call, p.Groups)
}

func permit(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.PermitParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.Permit(ctx, in.call, p.Permits)
}

func create(s *Ledger, ctx context.Context, in invocation, reply *SubmitReply) error {
	var p request.CreateParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	var id uint64
	var err error
	if nil != p.Permit {
		id, err = s.Ledger.CreateWithPermit(ctx, in.call, p.Info, p.Fund, *p.Permit)
	} else {
		id, err = s.Ledger.Create(ctx, in.call, p.Info, p.Fund)
	}
	if nil != err {
		return err
	}
	reply.Ids = []uint64{id}
	return nil
}

func batchCreate(s *Ledger, ctx context.Context, in invocation, reply *SubmitReply) error {
	var p request.BatchCreateParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	ids, err := s.Ledger.BatchCreate(ctx, in.call, p.Requests)
	if nil != err {
		return err
	}
	reply.Ids = ids
	return nil
}

func fund(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.PoolParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	if nil != p.Permit {
		return s.Ledger.FundWithPermit(ctx, in.call, p.Id, *p.Permit)
	}
	return s.Ledger.Fund(ctx, in.call, p.Id)
}

func batchFund(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.PoolsParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.BatchFund(ctx, in.call, p.Ids)
}

func claim(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.ClaimParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.Claim(ctx, in.call, p.Id, p.Index)
}

func batchClaim(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.BatchClaimParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.BatchClaim(ctx, in.call, p.Ids, p.Indices)
}

func distribute(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.PoolParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	if nil != p.Permit {
		return fault.ErrInvalidCalldata
	}
	return s.Ledger.Distribute(ctx, in.call, p.Id)
}

func batchDistribute(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.PoolsParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.BatchDistribute(ctx, in.call, p.Ids)
}

func cancel(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	var p request.PoolsParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	return s.Ledger.Cancel(ctx, in.call, p.Ids)
}

func execute(s *Ledger, ctx context.Context, in invocation, reply *SubmitReply) error {
	var p request.ExecuteParams
	if err := in.request.Decode(&p); nil != err {
		return err
	}
	result, err := s.Ledger.Execute(ctx, in.call, p.Target, p.Value, p.Data)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// asset operations act on the sender's own balances and take no value

func assetParams(in invocation) (*request.AssetParams, error) {
	if !in.call.AttachedValue().IsZero() {
		return nil, fault.ErrValueMismatch
	}
	var p request.AssetParams
	if err := in.request.Decode(&p); nil != err {
		return nil, err
	}
	if nil == p.Amount {
		return nil, fault.ErrInvalidAmount
	}
	return &p, nil
}

func approve(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	p, err := assetParams(in)
	if nil != err {
		return err
	}
	return s.World.Apply(ctx, func(ctx context.Context) error {
		return s.World.Approve(ctx, p.Asset, in.call.Sender, p.Account, p.Amount)
	})
}

func transfer(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	p, err := assetParams(in)
	if nil != err {
		return err
	}
	return s.World.Apply(ctx, func(ctx context.Context) error {
		if chain.Native == p.Asset {
			return s.World.SendNative(ctx, in.call.Sender, p.Account, p.Amount, false)
		}
		return s.World.Transfer(ctx, p.Asset, in.call.Sender, p.Account, p.Amount)
	})
}

func wrap(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	p, err := assetParams(in)
	if nil != err {
		return err
	}
	return s.World.Apply(ctx, func(ctx context.Context) error {
		return s.World.Wrap(ctx, in.call.Sender, p.Amount)
	})
}

func unwrap(s *Ledger, ctx context.Context, in invocation, _ *SubmitReply) error {
	p, err := assetParams(in)
	if nil != err {
		return err
	}
	return s.World.Apply(ctx, func(ctx context.Context) error {
		return s.World.Unwrap(ctx, in.call.Sender, p.Amount)
	})
}
