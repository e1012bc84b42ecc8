// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/lvldb"
	"github.com/demeterfi/demeter/state"
)

var launchTimeKey = demeter.BytesToBytes32([]byte("launch-time"))

// genesisAddress anchors genesis-only storage, such as the launch time.
var genesisAddress = demeter.BytesToAddress([]byte("genesis"))

// Builder helper to build genesis state.
type Builder struct {
	timestamp  uint64
	stateProcs []func(state *state.State) error
}

// Timestamp set the launch timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID compute genesis ID by building against a throwaway store.
func (b *Builder) ComputeID() (demeter.Bytes32, error) {
	store, err := lvldb.NewMem()
	if err != nil {
		return demeter.Bytes32{}, err
	}
	defer store.Close()

	return b.Build(state.NewStater(store))
}

// Build builds the genesis state according to presets and commits it in
// one stage. The returned id is the digest of the staged changes.
func (b *Builder) Build(stater *state.Stater) (demeter.Bytes32, error) {
	st := stater.NewState()

	// the launch time takes part in the identity, so presets differing
	// only by launch time build distinct networks
	if err := st.SetStructuredStorage(genesisAddress, launchTimeKey, b.timestamp); err != nil {
		return demeter.Bytes32{}, errors.Wrap(err, "set launch time")
	}
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return demeter.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	stage := st.Stage()
	id := stage.Hash()
	if err := stage.Commit(); err != nil {
		return demeter.Bytes32{}, errors.Wrap(err, "commit state")
	}
	return id, nil
}
