// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/disperse/fault"
)

const maxFeeBasisPoints = 10000

// AssetInfo - a fungible asset
type AssetInfo struct {
	Address        common.Address
	Symbol         string
	Decimals       int32
	FeeBasisPoints uint64 // deducted from every transfer and kept by the asset
	Permit         bool   // accepts signed allowances
	Hooks          bool   // notifies receivers
}

func (a AssetInfo) validate() error {
	if Native == a.Address {
		return fault.ErrNativeAssetNotAllowed
	}
	if a.FeeBasisPoints > maxFeeBasisPoints {
		return fault.ErrInvalidFeeBasisPoints
	}
	if a.Decimals < 0 || a.Decimals > 77 {
		return fault.ErrInvalidDecimals
	}
	return nil
}

// Asset - look up a registered asset
func (w *World) Asset(address common.Address) (AssetInfo, bool) {
	a, ok := w.assets[address]
	return a, ok
}

// Assets - all registered assets in address order
func (w *World) Assets() []AssetInfo {
	result := make([]AssetInfo, 0, len(w.assets))
	for _, a := range w.assets {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return string(result[i].Address[:]) < string(result[j].Address[:])
	})
	return result
}

// WrappedNative - the asset that wraps the native value
func (w *World) WrappedNative() (common.Address, error) {
	if Native == w.wrapped {
		return Native, fault.ErrNotWrappedNative
	}
	return w.wrapped, nil
}

// lookup an asset that can be transferred
func (w *World) transferable(asset common.Address) (AssetInfo, error) {
	if Native == asset {
		return AssetInfo{}, fault.ErrNativeAssetNotAllowed
	}
	a, ok := w.assets[asset]
	if !ok {
		return AssetInfo{}, fault.ErrUnknownAsset
	}
	return a, nil
}
