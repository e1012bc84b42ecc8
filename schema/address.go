// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/demeterfi/demeter/demeter"
)

// Address is a wrapper for storage and retrieval of a single address.
// The zero address reads back for an unset slot, and storing the zero
// address clears the slot.
type Address struct {
	context *Context
	pos     demeter.Bytes32
}

func NewAddress(context *Context, slot demeter.Bytes32) *Address {
	return &Address{context: context, pos: slot}
}

func (a *Address) Get() (addr demeter.Address, err error) {
	err = a.context.state.DecodeStorage(a.context.address, a.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		_, content, _, err := rlp.Split(raw)
		if err != nil {
			return err
		}
		addr = demeter.BytesToAddress(content)
		return nil
	})
	return
}

func (a *Address) Set(addr demeter.Address) error {
	return a.context.state.EncodeStorage(a.context.address, a.pos, func() ([]byte, error) {
		if addr.IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(bytes.TrimLeft(addr[:], "\x00"))
	})
}
