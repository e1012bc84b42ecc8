// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/lvldb"
	"github.com/demeterfi/demeter/state"
	"github.com/demeterfi/demeter/test/datagen"
)

func newTestToken(t *testing.T) *Token {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(demeter.BytesToAddress([]byte("seed-token")), state.NewStater(db).NewState())
}

func TestMint(t *testing.T) {
	tok := newTestToken(t)
	holder := datagen.RandAddress()

	require.NoError(t, tok.Mint(holder, big.NewInt(1000)))
	require.NoError(t, tok.Mint(holder, big.NewInt(500)))

	bal, err := tok.BalanceOf(holder)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), bal)

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), supply)
}

func TestTransfer(t *testing.T) {
	tok := newTestToken(t)
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	require.NoError(t, tok.Mint(alice, big.NewInt(1000)))
	require.NoError(t, tok.Transfer(alice, bob, big.NewInt(400)))

	balAlice, err := tok.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), balAlice)

	balBob, err := tok.BalanceOf(bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(400), balBob)

	// supply is conserved by transfers
	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)
}

func TestTransferInsufficient(t *testing.T) {
	tok := newTestToken(t)
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	require.NoError(t, tok.Mint(alice, big.NewInt(100)))

	err := tok.Transfer(alice, bob, big.NewInt(101))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	bal, err := tok.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), bal)
}

func TestTransferSelf(t *testing.T) {
	tok := newTestToken(t)
	alice := datagen.RandAddress()

	require.NoError(t, tok.Mint(alice, big.NewInt(100)))
	require.NoError(t, tok.Transfer(alice, alice, big.NewInt(100)))

	bal, err := tok.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), bal)
}

func TestTransferZero(t *testing.T) {
	tok := newTestToken(t)
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	// moving nothing from an empty account is fine
	require.NoError(t, tok.Transfer(alice, bob, new(big.Int)))
}

func TestBurn(t *testing.T) {
	tok := newTestToken(t)
	holder := datagen.RandAddress()

	require.NoError(t, tok.Mint(holder, big.NewInt(1000)))
	require.NoError(t, tok.Burn(holder, big.NewInt(5)))

	bal, err := tok.BalanceOf(holder)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(995), bal)

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(995), supply)

	burned, err := tok.TotalBurned()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), burned)

	err = tok.Burn(holder, big.NewInt(1000))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestLedgersAreIsolated(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db).NewState()
	seed := New(demeter.BytesToAddress([]byte("seed-token")), st)
	grain := New(demeter.BytesToAddress([]byte("grain-token")), st)
	holder := datagen.RandAddress()

	require.NoError(t, seed.Mint(holder, big.NewInt(7)))

	bal, err := grain.BalanceOf(holder)
	require.NoError(t, err)
	assert.Zero(t, bal.Sign())
}
