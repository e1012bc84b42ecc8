// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the ledger components to their well-known
// addresses. A component address is derived from its name, so the layout
// is fixed across every instance.
package builtin

import (
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/pool"
	"github.com/demeterfi/demeter/roles"
	"github.com/demeterfi/demeter/state"
	"github.com/demeterfi/demeter/token"
)

// Builtin ledger components binding.
var (
	Seed  = &tokenComponent{newComponent("seed-token")}
	Grain = &tokenComponent{newComponent("grain-token")}
	Roles = &rolesComponent{newComponent("roles")}
	Pool  = &poolComponent{newComponent("pool")}
)

// component is a well-known ledger component.
type component struct {
	Name    string
	Address demeter.Address
}

func newComponent(name string) component {
	return component{name, demeter.BytesToAddress([]byte(name))}
}

type (
	tokenComponent struct{ component }
	rolesComponent struct{ component }
	poolComponent  struct{ component }
)

// WithState binds the asset ledger to the given state.
func (c *tokenComponent) WithState(state *state.State) *token.Token {
	return token.New(c.Address, state)
}

// WithState binds the access registry to the given state.
func (c *rolesComponent) WithState(state *state.State) *roles.Roles {
	return roles.New(c.Address, state)
}

// WithState binds the pool and its collaborators to the given state.
// Events emitted by entry points are appended to sink.
func (c *poolComponent) WithState(state *state.State, sink *events.Collector) *pool.Pool {
	return pool.New(
		c.Address,
		state,
		Seed.WithState(state),
		Grain.WithState(state),
		Roles.WithState(state),
		sink,
	)
}
