// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial ledger state: token allocations,
// the role registry and the pool configuration. A genesis is identified
// by the digest of the state it builds, so two instances seeded from the
// same preset share an identity and two different presets never collide.
package genesis

import (
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/state"
)

// Genesis to build initial ledger state.
type Genesis struct {
	builder *Builder
	id      demeter.Bytes32
	name    string
}

// ID returns the identity of the genesis, the digest of the state it
// builds.
func (g *Genesis) ID() demeter.Bytes32 {
	return g.id
}

// Name returns the name of the network preset.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the timestamp the ledger history starts at.
func (g *Genesis) LaunchTime() uint64 {
	return g.builder.timestamp
}

// Build builds the genesis state over the given stater and commits it in
// one stage. The returned id always equals ID().
func (g *Genesis) Build(stater *state.Stater) (demeter.Bytes32, error) {
	id, err := g.builder.Build(stater)
	if err != nil {
		return demeter.Bytes32{}, err
	}
	return id, nil
}
