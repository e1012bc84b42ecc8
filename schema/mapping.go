// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/state"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for ledger components,
// similar to the mapping in Solidity. Value positions are derived from
// the key hashed with the base slot, so mappings declared on distinct
// slots never collide.
//
// Values implementing state.StorageEncoder/state.StorageDecoder use
// their own codec; everything else goes through plain rlp.
type Mapping[K Key, V any] struct {
	context *Context
	basePos demeter.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos demeter.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) demeter.Bytes32 {
	return demeter.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if dec, ok := any(value).(state.StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		if enc, ok := any(value).(state.StorageEncoder); ok {
			return enc.Encode()
		}
		return rlp.EncodeToBytes(value)
	})
}
