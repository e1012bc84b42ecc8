// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/state"
)

// Context binds typed storage slots to the storage space of a
// ledger component.
type Context struct {
	address demeter.Address
	state   *state.State
}

func NewContext(address demeter.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() demeter.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
