// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type BatchError GenericError
type ExistsError GenericError
type FundingError GenericError
type InvalidError GenericError
type LockError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyClaimed             = ExistsError("already claimed")
	ErrAlreadyInitialised         = ExistsError("already initialised")
	ErrAmountOverflow             = InvalidError("amount overflow")
	ErrAmountUnderflow            = InvalidError("amount underflow")
	ErrAssetAlreadyRegistered     = ExistsError("asset already registered")
	ErrCertificateFileExists      = ExistsError("certificate file already exists")
	ErrClaimIndexOutOfRange       = InvalidError("claim index out of range")
	ErrClaimOutsideWindow         = StateError("claim outside of pool window")
	ErrClaimerNotAscending        = InvalidError("claimers are not strictly increasing")
	ErrDatabaseIsNotSet           = ProcessError("database is not set")
	ErrEmptyClaimers              = InvalidError("claimer list is empty")
	ErrFeeOnTransfer              = FundingError("received less than requested amount")
	ErrInsufficientAllowance      = ProcessError("insufficient allowance")
	ErrInsufficientBalance        = ProcessError("insufficient balance")
	ErrInsufficientValue          = FundingError("attached value is less than total")
	ErrInvalidAmount              = InvalidError("invalid amount")
	ErrInvalidAddress             = InvalidError("invalid address")
	ErrInvalidCalldata            = InvalidError("invalid calldata")
	ErrInvalidChain               = InvalidError("invalid chain")
	ErrInvalidCount               = InvalidError("invalid count")
	ErrInvalidCursor              = InvalidError("invalid cursor")
	ErrInvalidDecimals            = InvalidError("invalid decimals")
	ErrInvalidFeeBasisPoints      = InvalidError("invalid fee basis points")
	ErrInvalidIPAddress           = InvalidError("invalid IP address")
	ErrInvalidNonce               = InvalidError("invalid nonce")
	ErrInvalidOwner               = InvalidError("invalid owner")
	ErrInvalidPasswordLength      = InvalidError("invalid password length")
	ErrInvalidPermitSignature     = ProcessError("invalid permit signature")
	ErrInvalidPortNumber          = InvalidError("invalid port number")
	ErrInvalidSignature           = InvalidError("invalid signature")
	ErrInvalidStructPointer       = InvalidError("invalid struct pointer")
	ErrInvalidTimeWindow          = InvalidError("start must be before deadline")
	ErrKeyFileExists              = ExistsError("key file already exists")
	ErrKeyLength                  = InvalidError("key length is invalid")
	ErrLengthMismatch             = InvalidError("recipients and amounts length mismatch")
	ErrMissingParameters          = InvalidError("missing parameters")
	ErrMultipleNativeGroups       = BatchError("more than one native group in batch")
	ErrMultipleNativePools        = BatchError("more than one native pool in batch")
	ErrNativeAssetNotAllowed      = InvalidError("native asset not allowed")
	ErrNativeTransferRejected     = ProcessError("native transfer rejected")
	ErrNotClaimer                 = AuthorisationError("caller is not the claimer")
	ErrNotDistributor             = AuthorisationError("caller is not the distributor")
	ErrNotInitialised             = StateError("not initialised")
	ErrNotOwner                   = AuthorisationError("caller is not the owner")
	ErrNotWrappedNative           = InvalidError("wrapped native asset is not configured")
	ErrPasswordMismatch           = InvalidError("password mismatch")
	ErrPermitExpired              = ProcessError("permit expired")
	ErrPermitUnsupported          = ProcessError("asset does not support permit")
	ErrPoolActive                 = StateError("pool is active")
	ErrPoolClosed                 = StateError("pool is closed")
	ErrPoolNotFound               = StateError("pool not found")
	ErrPoolNotFunded              = StateError("pool is not funded")
	ErrPoolNotInitialised         = StateError("pool is not in initialised state")
	ErrRateLimiting               = ProcessError("rate limiting")
	ErrReentrantCall              = LockError("reentrant call")
	ErrRecordTruncated            = InvalidError("record is truncated")
	ErrStartNotInFuture           = InvalidError("start time is not in the future")
	ErrTransactionAlreadyInUse    = LockError("transaction already in use")
	ErrTransactionNotInUse        = ProcessError("transaction not in use")
	ErrUnknownAsset               = NotFoundError("unknown asset")
	ErrUnknownMethod              = NotFoundError("unknown method")
	ErrValueMismatch              = FundingError("attached value mismatch")
	ErrWrongPassword              = InvalidError("wrong password")
	ErrZeroAmount                 = InvalidError("amount must be positive")
	ErrZeroClaimer                = InvalidError("claimer is the zero address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e BatchError) Error() string         { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e FundingError) Error() string       { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e LockError) Error() string          { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e StateError) Error() string         { return string(e) }

// determine the class of an error
func IsErrAuthorisation(e error) bool { var t AuthorisationError; return errors.As(e, &t) }
func IsErrBatch(e error) bool         { var t BatchError; return errors.As(e, &t) }
func IsErrExists(e error) bool        { var t ExistsError; return errors.As(e, &t) }
func IsErrFunding(e error) bool       { var t FundingError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool       { var t InvalidError; return errors.As(e, &t) }
func IsErrLock(e error) bool          { var t LockError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool      { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool       { var t ProcessError; return errors.As(e, &t) }
func IsErrState(e error) bool         { var t StateError; return errors.As(e, &t) }
