// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyfile_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/command/disperse-cli/keyfile"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/fixtures"
)

func TestEncryptDecrypt(t *testing.T) {
	f, err := keyfile.Encrypt(fixtures.Key1, "secret password")
	require.Nil(t, err, "encrypt error")
	assert.Equal(t, fixtures.Account1, f.Address, "wrong address")

	key, err := f.Decrypt("secret password")
	require.Nil(t, err, "decrypt error")
	assert.Equal(t, crypto.FromECDSA(fixtures.Key1), crypto.FromECDSA(key), "wrong key")

	_, err = f.Decrypt("wrong password")
	assert.Equal(t, fault.ErrWrongPassword, err, "wrong password accepted")
}

func TestDecryptDamaged(t *testing.T) {
	f, err := keyfile.Encrypt(fixtures.Key2, "pw")
	require.Nil(t, err, "encrypt error")

	f.Nonce = f.Nonce[1:]
	_, err = f.Decrypt("pw")
	assert.Equal(t, fault.ErrKeyLength, err, "short nonce accepted")
}

func TestSaveLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "keys", "local.key")

	f, err := keyfile.Encrypt(fixtures.Key3, "pw")
	require.Nil(t, err, "encrypt error")

	err = keyfile.Save(name, f)
	require.Nil(t, err, "save error")

	err = keyfile.Save(name, f)
	assert.Equal(t, fault.ErrKeyFileExists, err, "file overwritten")

	loaded, err := keyfile.Load(name)
	require.Nil(t, err, "load error")
	assert.Equal(t, f, loaded, "loaded file differs")

	key, err := loaded.Decrypt("pw")
	require.Nil(t, err, "decrypt error")
	assert.Equal(t, fixtures.Account3, crypto.PubkeyToAddress(key.PublicKey), "wrong account")
}
