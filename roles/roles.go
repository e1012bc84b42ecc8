// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package roles implements the access registry of the ledger: the owner,
// fixed at genesis and allowed to tune parameters, and the distributor,
// the only party allowed to fund rewards. The registry itself performs no
// authorization, callers gate on the addresses it returns.
package roles

import (
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/schema"
	"github.com/demeterfi/demeter/state"
)

var (
	slotOwner       = demeter.BytesToBytes32([]byte("owner"))
	slotDistributor = demeter.BytesToBytes32([]byte("distributor"))
)

// Roles gives access to the role addresses stored at a component address.
type Roles struct {
	owner       *schema.Address
	distributor *schema.Address
}

// New binds the registry stored at addr to the given state.
func New(addr demeter.Address, state *state.State) *Roles {
	context := schema.NewContext(addr, state)
	return &Roles{
		owner:       schema.NewAddress(context, slotOwner),
		distributor: schema.NewAddress(context, slotDistributor),
	}
}

// Owner returns the owner address, zero if never set.
func (r *Roles) Owner() (demeter.Address, error) {
	return r.owner.Get()
}

// SetOwner stores the owner address.
func (r *Roles) SetOwner(addr demeter.Address) error {
	return r.owner.Set(addr)
}

// Distributor returns the reward distributor address, zero if never set.
func (r *Roles) Distributor() (demeter.Address, error) {
	return r.distributor.Get()
}

// SetDistributor stores the reward distributor address.
func (r *Roles) SetDistributor(addr demeter.Address) error {
	return r.distributor.Set(addr)
}
