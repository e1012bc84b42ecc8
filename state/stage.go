// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/demeterfi/demeter/cache"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/kv"
)

// Stage abstracts the changes on the state to be committed to the
// committed store.
type Stage struct {
	store   kv.Store
	cache   *cache.LRU
	changes map[storageKey]rlp.RawValue
}

// Len returns the number of changed storage values.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash derives a digest identifying the staged changes. The digest is
// independent of write order, so two stages carrying the same changes
// hash alike.
func (s *Stage) Hash() demeter.Bytes32 {
	type pair struct{ key, value []byte }
	pairs := make([]pair, 0, len(s.changes))
	for k, v := range s.changes {
		pairs = append(pairs, pair{k.bytes(), v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})

	return demeter.Blake2bFn(func(w io.Writer) {
		for _, p := range pairs {
			w.Write(p.key)
			w.Write(p.value)
		}
	})
}

// Commit commits all changes in one batch.
// Empty values are deleted from the store, so absent and zeroed
// entries are indistinguishable.
func (s *Stage) Commit() error {
	batch := s.store.NewBatch()
	for k, v := range s.changes {
		if len(v) == 0 {
			if err := batch.Delete(k.bytes()); err != nil {
				return &Error{err}
			}
		} else {
			if err := batch.Put(k.bytes(), v); err != nil {
				return &Error{err}
			}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	if s.cache != nil {
		for k, v := range s.changes {
			s.cache.Add(k, v)
		}
	}
	return nil
}
