// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
)

// maxFundableReward bounds a single funding amount: reward * RewardScale
// must fit the 256-bit arithmetic width. The bound is compared before any
// multiplication is attempted.
var maxFundableReward = new(uint256.Int).Div(
	new(uint256.Int).SetAllOne(),
	uint256.MustFromBig(demeter.RewardScale),
)

func exceedsRewardBound(reward *big.Int) bool {
	r, overflow := uint256.FromBig(reward)
	return overflow || r.Gt(maxFundableReward)
}

// NotifyReward schedules reward units for distribution over the configured
// duration, restarting the period window at now. Distributor only. The
// reward asset must already sit in pool custody; funding never moves
// tokens, it only updates accounting.
func (p *Pool) NotifyReward(caller demeter.Address, reward *big.Int, now uint64) error {
	logger.Debug("funding", "caller", caller, "reward", reward, "now", now)

	return p.guarded(func() error {
		if err := p.requireDistributor(caller); err != nil {
			logger.Info("funding failed", "caller", caller, "error", err)
			return err
		}
		if exceedsRewardBound(reward) {
			logger.Info("funding failed", "reward", reward, "error", ErrRewardOverflow)
			return ErrRewardOverflow
		}

		// global-only checkpoint, funding has no subject account
		if err := p.checkpoint(now, nil); err != nil {
			return err
		}

		duration, err := p.storage.getRewardsDuration()
		if err != nil {
			return err
		}
		if duration == 0 {
			return errors.New("rewards duration not initialized")
		}
		finish, err := p.storage.getPeriodFinish()
		if err != nil {
			return err
		}

		rate := new(big.Int).Set(reward)
		if now < finish {
			// mid-period top-up: blend in the reward still owed under the
			// old rate for the unexpired remainder
			oldRate, err := p.storage.getRewardRate()
			if err != nil {
				return err
			}
			leftover := new(big.Int).SetUint64(finish - now)
			leftover.Mul(leftover, oldRate)
			rate.Add(rate, leftover)
		}
		rate.Div(rate, new(big.Int).SetUint64(duration))

		// funding always restarts a full period window
		p.storage.setRewardRate(rate)
		p.storage.setLastUpdateTime(now)
		p.storage.setPeriodFinish(now + duration)

		p.events.Add(events.NewRewardAdded(p.addr, reward))
		logger.Info("reward added", "reward", reward, "rate", rate, "periodFinish", now+duration)
		return nil
	})
}

// SetBurnRate updates the exit penalty percentage. Owner only, bounded to
// demeter.MaxBurnRate. The new rate applies to withdrawals from the next
// operation on.
func (p *Pool) SetBurnRate(caller demeter.Address, rate uint64) error {
	logger.Debug("setting burn rate", "caller", caller, "rate", rate)

	if err := p.requireOwner(caller); err != nil {
		logger.Info("set burn rate failed", "caller", caller, "error", err)
		return err
	}
	if rate > demeter.MaxBurnRate {
		logger.Info("set burn rate failed", "rate", rate, "error", ErrInvalidBurnRate)
		return ErrInvalidBurnRate
	}
	p.storage.setBurnRate(rate)

	logger.Info("burn rate updated", "rate", rate)
	return nil
}

// SetDistributor rotates the party allowed to fund rewards. Owner only.
func (p *Pool) SetDistributor(caller, distributor demeter.Address) error {
	logger.Debug("setting distributor", "caller", caller, "distributor", distributor)

	if err := p.requireOwner(caller); err != nil {
		logger.Info("set distributor failed", "caller", caller, "error", err)
		return err
	}
	if err := p.roles.SetDistributor(distributor); err != nil {
		return err
	}

	logger.Info("distributor updated", "distributor", distributor)
	return nil
}
