// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/demeterfi/demeter/cache"
	"github.com/demeterfi/demeter/kv"
)

const storageCacheSize = 2048

// Stater is the factory of state instances sharing one value cache.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater create a stater object over the committed store.
func NewStater(store kv.Store) *Stater {
	valueCache, _ := cache.NewLRU(storageCacheSize)
	return &Stater{
		store: store,
		cache: valueCache,
	}
}

// NewState create a fresh state instance on top of the committed store.
func (s *Stater) NewState() *State {
	return New(s.store, s.cache)
}
