// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/demeterfi/demeter/state"
)

// Position is the stake record of one account, created lazily on first
// stake and mutated by every stake, withdraw and claim. RewardPerUnitPaid
// is the accumulator watermark the account was last settled against;
// RewardsOwed is entitlement settled but not yet paid out.
type Position struct {
	Staked            *big.Int
	RewardPerUnitPaid *big.Int
	RewardsOwed       *big.Int
}

var (
	_ state.StorageEncoder = (*Position)(nil)
	_ state.StorageDecoder = (*Position)(nil)
)

// Encode implements state.StorageEncoder. An all-zero position encodes to
// nil, clearing its slot; it reads back as the same all-zero record.
func (p *Position) Encode() ([]byte, error) {
	if p.Staked.Sign() == 0 && p.RewardPerUnitPaid.Sign() == 0 && p.RewardsOwed.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(p)
}

// Decode implements state.StorageDecoder.
func (p *Position) Decode(data []byte) error {
	if len(data) == 0 {
		*p = Position{new(big.Int), new(big.Int), new(big.Int)}
		return nil
	}
	return rlp.DecodeBytes(data, p)
}
