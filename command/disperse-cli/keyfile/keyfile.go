// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyfile - a secp256k1 private key stored encrypted with a
// password derived key
package keyfile

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/disperse/fault"
)

const (
	saltSize  = 32
	nonceSize = 24
	keySize   = 32

	// argon2id parameters
	iterations  = 5
	memory      = 1 << 16
	parallelism = 4
)

// File - the stored form
type File struct {
	Address    common.Address `json:"address"`
	Salt       hexutil.Bytes  `json:"salt"`
	Nonce      hexutil.Bytes  `json:"nonce"`
	PrivateKey hexutil.Bytes  `json:"private_key"`
}

func generateKey(password string, salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keySize))
	return &key
}

// Encrypt - seal a private key with password
func Encrypt(key *ecdsa.PrivateKey, password string) (*File, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); nil != err {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); nil != err {
		return nil, err
	}

	sealed := secretbox.Seal(nil, crypto.FromECDSA(key), &nonce, generateKey(password, salt))

	return &File{
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		Salt:       salt,
		Nonce:      nonce[:],
		PrivateKey: sealed,
	}, nil
}

// Decrypt - recover the private key, a wrong password is
// ErrWrongPassword
func (f *File) Decrypt(password string) (*ecdsa.PrivateKey, error) {
	if nonceSize != len(f.Nonce) || saltSize != len(f.Salt) {
		return nil, fault.ErrKeyLength
	}

	var nonce [nonceSize]byte
	copy(nonce[:], f.Nonce)

	raw, ok := secretbox.Open(nil, f.PrivateKey, &nonce, generateKey(password, f.Salt))
	if !ok {
		return nil, fault.ErrWrongPassword
	}
	if keySize != len(raw) {
		return nil, fault.ErrKeyLength
	}

	key, err := crypto.ToECDSA(raw)
	if nil != err {
		return nil, err
	}
	if crypto.PubkeyToAddress(key.PublicKey) != f.Address {
		return nil, fault.ErrWrongPassword
	}
	return key, nil
}

// Save - write a new key file, an existing file is never replaced
func Save(fileName string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if nil != err {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0700); nil != err {
		return err
	}

	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if nil != err {
		if os.IsExist(err) {
			return fault.ErrKeyFileExists
		}
		return err
	}

	_, err = fd.Write(append(data, '\n'))
	if nil != err {
		fd.Close()
		_ = os.Remove(fileName)
		return err
	}
	return fd.Close()
}

// Load - read a key file
func Load(fileName string) (*File, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	f := &File{}
	err = json.Unmarshal(data, f)
	if nil != err {
		return nil, err
	}
	return f, nil
}
