// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/demeterfi/demeter/state"
)

// balance is the stored holding of one account. A zero holding encodes to
// nil, clearing its storage slot.
type balance struct {
	Value *big.Int
}

var (
	_ state.StorageEncoder = (*balance)(nil)
	_ state.StorageDecoder = (*balance)(nil)
)

func (b *balance) Encode() ([]byte, error) {
	if b.Value.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(b.Value)
}

func (b *balance) Decode(data []byte) error {
	if len(data) == 0 {
		b.Value = new(big.Int)
		return nil
	}
	return rlp.DecodeBytes(data, &b.Value)
}
