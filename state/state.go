// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/demeterfi/demeter/cache"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/kv"
	"github.com/demeterfi/demeter/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// storageKey locates a raw storage value.
type storageKey struct {
	addr demeter.Address
	key  demeter.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(k.addr.Bytes(), k.key[:]...)
}

// State manages the world state.
type State struct {
	store kv.Store               // the committed storage
	cache *cache.LRU             // read-through cache of committed raw values
	sm    *stackedmap.StackedMap // keeps revisions of storage values
}

// New create a state object over the committed store.
// The returned instance carries a base layer, so writes are
// valid right away and stay pending until staged and committed.
func New(store kv.Store, valueCache *cache.LRU) *State {
	state := State{
		store: store,
		cache: valueCache,
	}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.srcGetter(key)
	})
	state.sm.Push()
	return &state
}

// srcGetter implements stackedmap.MapGetter, reading through the
// value cache into the committed store.
func (s *State) srcGetter(key any) (value any, exist bool, err error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %+v", key))
	}

	load := func(any) (any, error) {
		data, err := s.store.Get(k.bytes())
		if err != nil {
			if s.store.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(data), nil
	}

	var v any
	if s.cache != nil {
		v, err = s.cache.GetOrLoad(k, load)
	} else {
		v, err = load(k)
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr demeter.Address, key demeter.Bytes32) (demeter.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return demeter.Bytes32{}, err
	}
	if len(raw) == 0 {
		return demeter.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return demeter.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return demeter.Blake2b(raw), nil
	}
	return demeter.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr demeter.Address, key, value demeter.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr demeter.Address, key demeter.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
// Nil raw clears the value.
func (s *State) SetRawStorage(addr demeter.Address, key demeter.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr demeter.Address, key demeter.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr demeter.Address, key demeter.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetStructuredStorage get and decode structured storage value.
// val should implement StorageDecoder, or be a rlp decodable pointer.
func (s *State) GetStructuredStorage(addr demeter.Address, key demeter.Bytes32, val any) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		if dec, ok := val.(StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage encode and set structured storage value.
// val should implement StorageEncoder, or be rlp encodable.
func (s *State) SetStructuredStorage(addr demeter.Address, key demeter.Bytes32, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		if enc, ok := val.(StorageEncoder); ok {
			return enc.Encode()
		}
		return rlp.EncodeToBytes(val)
	})
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects all journaled changes into a stage object, ready
// to be committed to the underlying store in one batch.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(storageKey)] = v.(rlp.RawValue)
		return true
	})
	return &Stage{
		store:   s.store,
		cache:   s.cache,
		changes: changes,
	}
}
