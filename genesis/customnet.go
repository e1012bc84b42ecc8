// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/builtin"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/state"
)

// NewCustomNet create genesis from user customized genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Owner.IsZero() {
		return nil, errors.New("owner must be set")
	}
	if gen.Distributor.IsZero() {
		return nil, errors.New("distributor must be set")
	}
	duration := gen.RewardsDuration
	if duration == 0 {
		duration = demeter.DefaultRewardsDuration
	}
	if gen.BurnRate > demeter.MaxBurnRate {
		return nil, errors.Errorf("burn rate %d out of range [0, %d]", gen.BurnRate, demeter.MaxBurnRate)
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		State(func(state *state.State) error {
			seed := builtin.Seed.WithState(state)
			grain := builtin.Grain.WithState(state)
			for _, acc := range gen.Accounts {
				if acc.Stake != nil {
					if err := seed.Mint(acc.Address, (*big.Int)(acc.Stake)); err != nil {
						return err
					}
				}
				if acc.Reward != nil {
					if err := grain.Mint(acc.Address, (*big.Int)(acc.Reward)); err != nil {
						return err
					}
				}
			}

			reg := builtin.Roles.WithState(state)
			if err := reg.SetOwner(gen.Owner); err != nil {
				return err
			}
			if err := reg.SetDistributor(gen.Distributor); err != nil {
				return err
			}

			return builtin.Pool.WithState(state, &events.Collector{}).Init(duration, gen.BurnRate)
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, id, name}, nil
}
