// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the ledger of a single asset. Each asset lives
// at its own component address and tracks per-holder balances, the amount
// in circulation and the cumulative amount destroyed.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/schema"
	"github.com/demeterfi/demeter/state"
)

var (
	slotBalances    = demeter.BytesToBytes32([]byte("balances"))
	slotTotalSupply = demeter.BytesToBytes32([]byte("total-supply"))
	slotTotalBurned = demeter.BytesToBytes32([]byte("total-burned"))
)

// ErrInsufficientFunds is returned when a holder's balance cannot cover a
// transfer or burn.
var ErrInsufficientFunds = errors.New("token: insufficient funds")

// Token is one asset ledger bound to a component address and a state.
type Token struct {
	balances    *schema.Mapping[demeter.Address, *balance]
	totalSupply *schema.Uint256
	totalBurned *schema.Uint256
}

// New binds the asset ledger stored at addr to the given state.
func New(addr demeter.Address, state *state.State) *Token {
	context := schema.NewContext(addr, state)
	return &Token{
		balances:    schema.NewMapping[demeter.Address, *balance](context, slotBalances),
		totalSupply: schema.NewUint256(context, slotTotalSupply),
		totalBurned: schema.NewUint256(context, slotTotalBurned),
	}
}

// BalanceOf returns the amount held by addr.
func (t *Token) BalanceOf(addr demeter.Address) (*big.Int, error) {
	b, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}
	return b.Value, nil
}

// TotalSupply returns the amount currently in circulation.
func (t *Token) TotalSupply() (*big.Int, error) {
	supply, err := t.totalSupply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get total supply")
	}
	return supply, nil
}

// TotalBurned returns the cumulative amount destroyed since genesis.
func (t *Token) TotalBurned() (*big.Int, error) {
	burned, err := t.totalBurned.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get total burned")
	}
	return burned, nil
}

// Mint credits addr with amount and grows the circulating supply.
func (t *Token) Mint(addr demeter.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative amount")
	}
	if amount.Sign() == 0 {
		return nil
	}
	b, err := t.balances.Get(addr)
	if err != nil {
		return errors.Wrap(err, "get balance")
	}
	b.Value.Add(b.Value, amount)
	if err := t.balances.Set(addr, b); err != nil {
		return errors.Wrap(err, "set balance")
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return errors.Wrap(err, "add total supply")
	}
	return nil
}

// Transfer moves amount from one holder to another.
func (t *Token) Transfer(from, to demeter.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative amount")
	}
	if amount.Sign() == 0 {
		return nil
	}
	sender, err := t.balances.Get(from)
	if err != nil {
		return errors.Wrap(err, "get sender balance")
	}
	if sender.Value.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	sender.Value.Sub(sender.Value, amount)
	if err := t.balances.Set(from, sender); err != nil {
		return errors.Wrap(err, "set sender balance")
	}
	// re-read so a self transfer nets out to zero
	receiver, err := t.balances.Get(to)
	if err != nil {
		return errors.Wrap(err, "get receiver balance")
	}
	receiver.Value.Add(receiver.Value, amount)
	if err := t.balances.Set(to, receiver); err != nil {
		return errors.Wrap(err, "set receiver balance")
	}
	return nil
}

// Burn destroys amount held by addr, removing it from circulation for good.
func (t *Token) Burn(addr demeter.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative amount")
	}
	if amount.Sign() == 0 {
		return nil
	}
	b, err := t.balances.Get(addr)
	if err != nil {
		return errors.Wrap(err, "get balance")
	}
	if b.Value.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	b.Value.Sub(b.Value, amount)
	if err := t.balances.Set(addr, b); err != nil {
		return errors.Wrap(err, "set balance")
	}
	if err := t.totalSupply.Sub(amount); err != nil {
		return errors.Wrap(err, "sub total supply")
	}
	if err := t.totalBurned.Add(amount); err != nil {
		return errors.Wrap(err, "add total burned")
	}
	return nil
}
