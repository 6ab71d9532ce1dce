// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount - checked 256 bit unsigned arithmetic for balances
//
// every operation that could wrap returns an error instead
package amount

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/disperse/fault"
)

// Size - number of bytes in a packed amount
const Size = 32

// Zero - a new zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Max - the largest representable amount
func Max() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// Add - a + b, error on overflow
func Add(a *uint256.Int, b *uint256.Int) (*uint256.Int, error) {
	result, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, fault.ErrAmountOverflow
	}
	return result, nil
}

// Sub - a - b, error on underflow
func Sub(a *uint256.Int, b *uint256.Int) (*uint256.Int, error) {
	result, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, fault.ErrAmountUnderflow
	}
	return result, nil
}

// Sum - total of all values, error on overflow
func Sum(values []*uint256.Int) (*uint256.Int, error) {
	total := Zero()
	for _, v := range values {
		if nil == v {
			return nil, fault.ErrInvalidAmount
		}
		if _, overflow := total.AddOverflow(total, v); overflow {
			return nil, fault.ErrAmountOverflow
		}
	}
	return total, nil
}

// BasisPoints - value * bp / 10000 rounded down
func BasisPoints(value *uint256.Int, bp uint64) *uint256.Int {
	result := new(uint256.Int)
	result.MulDivOverflow(value, uint256.NewInt(bp), uint256.NewInt(10000))
	return result
}

// Pack - fixed 32 byte big endian encoding, nil packs as zero
func Pack(value *uint256.Int) []byte {
	if nil == value {
		return make([]byte, Size)
	}
	b := value.Bytes32()
	return b[:]
}

// Unpack - decode a fixed 32 byte big endian value
func Unpack(buffer []byte) (*uint256.Int, error) {
	if len(buffer) < Size {
		return nil, fault.ErrRecordTruncated
	}
	return new(uint256.Int).SetBytes32(buffer[:Size]), nil
}

// Parse - decimal or 0x prefixed hex string
func Parse(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return nil, fault.ErrInvalidAmount
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := uint256.FromHex(s)
		if nil != err {
			return nil, fault.ErrInvalidAmount
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(s)
	if nil != err {
		return nil, fault.ErrInvalidAmount
	}
	return v, nil
}

// ParseUnits - parse a human value like "1.5" scaled by decimals
func ParseUnits(s string, decimals int32) (*uint256.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if nil != err || d.IsNegative() {
		return nil, fault.ErrInvalidAmount
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fault.ErrInvalidAmount
	}
	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, fault.ErrAmountOverflow
	}
	return v, nil
}

// Format - render in whole units with the given number of decimals
func Format(value *uint256.Int, decimals int32) string {
	if nil == value {
		return "0"
	}
	return decimal.NewFromBigInt(value.ToBig(), -decimals).String()
}
