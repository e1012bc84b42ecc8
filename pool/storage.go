// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/schema"
	"github.com/demeterfi/demeter/state"
)

var (
	// accrual state
	slotTotalStaked    = nameToSlot("total-staked")
	slotRewardRate     = nameToSlot("reward-rate")
	slotRewardPerUnit  = nameToSlot("reward-per-unit-stored")
	slotPeriodFinish   = nameToSlot("period-finish")
	slotLastUpdateTime = nameToSlot("last-update-time")
	// init params
	slotRewardsDuration = nameToSlot("rewards-duration")
	slotBurnRate        = nameToSlot("burn-rate")
	// reentrancy flag
	slotEntered = nameToSlot("entered")
	// account positions mapping
	slotPositions = nameToSlot("positions")
)

func nameToSlot(name string) demeter.Bytes32 {
	return demeter.BytesToBytes32([]byte(name))
}

// storage represents the root storage of the pool ledger.
type storage struct {
	totalStaked     *schema.Uint256
	rewardRate      *schema.Uint256
	rewardPerUnit   *schema.Uint256
	periodFinish    *schema.Uint256
	lastUpdateTime  *schema.Uint256
	rewardsDuration *schema.Uint256
	burnRate        *schema.Uint256
	entered         *schema.Uint256
	positions       *schema.Mapping[demeter.Address, *Position]
}

// newStorage creates a new instance of storage.
func newStorage(addr demeter.Address, state *state.State) *storage {
	context := schema.NewContext(addr, state)
	return &storage{
		totalStaked:     schema.NewUint256(context, slotTotalStaked),
		rewardRate:      schema.NewUint256(context, slotRewardRate),
		rewardPerUnit:   schema.NewUint256(context, slotRewardPerUnit),
		periodFinish:    schema.NewUint256(context, slotPeriodFinish),
		lastUpdateTime:  schema.NewUint256(context, slotLastUpdateTime),
		rewardsDuration: schema.NewUint256(context, slotRewardsDuration),
		burnRate:        schema.NewUint256(context, slotBurnRate),
		entered:         schema.NewUint256(context, slotEntered),
		positions:       schema.NewMapping[demeter.Address, *Position](context, slotPositions),
	}
}

func (s *storage) getPosition(addr demeter.Address) (*Position, error) {
	pos, err := s.positions.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return pos, nil
}

func (s *storage) setPosition(addr demeter.Address, entry *Position) error {
	if err := s.positions.Set(addr, entry); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

func (s *storage) getTotalStaked() (*big.Int, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	return total, nil
}

func (s *storage) addTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add total staked")
	}
	return nil
}

func (s *storage) subTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub total staked")
	}
	return nil
}

func (s *storage) getRewardRate() (*big.Int, error) {
	rate, err := s.rewardRate.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward rate")
	}
	return rate, nil
}

func (s *storage) setRewardRate(rate *big.Int) {
	s.rewardRate.Set(rate)
}

func (s *storage) getRewardPerUnit() (*big.Int, error) {
	stored, err := s.rewardPerUnit.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward per unit")
	}
	return stored, nil
}

func (s *storage) setRewardPerUnit(value *big.Int) {
	s.rewardPerUnit.Set(value)
}

func (s *storage) getPeriodFinish() (uint64, error) {
	finish, err := s.periodFinish.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get period finish")
	}
	return finish.Uint64(), nil
}

func (s *storage) setPeriodFinish(t uint64) {
	s.periodFinish.Set(new(big.Int).SetUint64(t))
}

func (s *storage) getLastUpdateTime() (uint64, error) {
	last, err := s.lastUpdateTime.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get last update time")
	}
	return last.Uint64(), nil
}

func (s *storage) setLastUpdateTime(t uint64) {
	s.lastUpdateTime.Set(new(big.Int).SetUint64(t))
}

func (s *storage) getRewardsDuration() (uint64, error) {
	duration, err := s.rewardsDuration.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get rewards duration")
	}
	return duration.Uint64(), nil
}

func (s *storage) setRewardsDuration(duration uint64) {
	s.rewardsDuration.Set(new(big.Int).SetUint64(duration))
}

func (s *storage) getBurnRate() (uint64, error) {
	rate, err := s.burnRate.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get burn rate")
	}
	return rate.Uint64(), nil
}

func (s *storage) setBurnRate(rate uint64) {
	s.burnRate.Set(new(big.Int).SetUint64(rate))
}

func (s *storage) getEntered() (bool, error) {
	entered, err := s.entered.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get entered flag")
	}
	return entered.Sign() != 0, nil
}

func (s *storage) setEntered(entered bool) {
	if entered {
		s.entered.Set(big.NewInt(1))
	} else {
		s.entered.Set(new(big.Int))
	}
}
