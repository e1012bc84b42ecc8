// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the staking ledger core: time-weighted
// reward-per-unit accrual, period-based reward funding and
// burn-on-withdraw. Every mutating entry point settles accrual first,
// mutates the ledger second and moves assets last; the hosting executor
// provides atomicity by discarding the state of a failed operation.
package pool

import (
	"math/big"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/log"
	"github.com/demeterfi/demeter/roles"
	"github.com/demeterfi/demeter/state"
	"github.com/demeterfi/demeter/token"
)

var logger = log.WithContext("pkg", "pool")

// SetLogger swaps the package logger, used by tests to silence or capture
// output.
func SetLogger(l log.Logger) {
	logger = l
}

// Pool is the staking ledger bound to one state. stake is the asset
// participants lock, reward the asset distributed to them; both are held
// in custody at the pool's own address. Observable events are appended to
// the collector only on paths that succeed.
type Pool struct {
	addr    demeter.Address
	storage *storage
	stake   *token.Token
	reward  *token.Token
	roles   *roles.Roles
	events  *events.Collector
}

// New binds the pool ledger stored at addr to the given state and
// collaborators.
func New(addr demeter.Address, st *state.State, stake, reward *token.Token, reg *roles.Roles, sink *events.Collector) *Pool {
	return &Pool{
		addr:    addr,
		storage: newStorage(addr, st),
		stake:   stake,
		reward:  reward,
		roles:   reg,
		events:  sink,
	}
}

// Address returns the pool's component address, the custody account for
// both assets.
func (p *Pool) Address() demeter.Address {
	return p.addr
}

// Init seeds the pool configuration. It is the genesis path and must run
// once before any entry point.
func (p *Pool) Init(rewardsDuration, burnRate uint64) error {
	if rewardsDuration == 0 {
		return ErrInvalidAmount
	}
	if burnRate > demeter.MaxBurnRate {
		return ErrInvalidBurnRate
	}
	p.storage.setRewardsDuration(rewardsDuration)
	p.storage.setBurnRate(burnRate)
	return nil
}

//
// Getters - no state change
//

// TotalStaked returns the sum of all staked balances.
func (p *Pool) TotalStaked() (*big.Int, error) {
	return p.storage.getTotalStaked()
}

// BalanceOf returns the staked balance of account.
func (p *Pool) BalanceOf(account demeter.Address) (*big.Int, error) {
	pos, err := p.storage.getPosition(account)
	if err != nil {
		return nil, err
	}
	return pos.Staked, nil
}

// RewardPerUnit returns the value the reward-per-unit accumulator has
// reached at time now, including accrual not yet checkpointed.
func (p *Pool) RewardPerUnit(now uint64) (*big.Int, error) {
	stored, err := p.storage.getRewardPerUnit()
	if err != nil {
		return nil, err
	}
	total, err := p.storage.getTotalStaked()
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return stored, nil
	}
	rate, err := p.storage.getRewardRate()
	if err != nil {
		return nil, err
	}
	finish, err := p.storage.getPeriodFinish()
	if err != nil {
		return nil, err
	}
	last, err := p.storage.getLastUpdateTime()
	if err != nil {
		return nil, err
	}
	return accruedPerUnit(stored, rate, total, last, lastApplicableTime(now, finish)), nil
}

// Earned returns the reward account could claim at time now.
func (p *Pool) Earned(account demeter.Address, now uint64) (*big.Int, error) {
	perUnit, err := p.RewardPerUnit(now)
	if err != nil {
		return nil, err
	}
	pos, err := p.storage.getPosition(account)
	if err != nil {
		return nil, err
	}
	return accruedReward(pos.Staked, perUnit, pos.RewardPerUnitPaid, pos.RewardsOwed), nil
}

// LastApplicableTime returns now bounded by the end of the active funding
// period.
func (p *Pool) LastApplicableTime(now uint64) (uint64, error) {
	finish, err := p.storage.getPeriodFinish()
	if err != nil {
		return 0, err
	}
	return lastApplicableTime(now, finish), nil
}

// RewardRate returns the reward units distributed per second while the
// period runs.
func (p *Pool) RewardRate() (*big.Int, error) {
	return p.storage.getRewardRate()
}

// PeriodFinish returns the timestamp the active funding period ends.
func (p *Pool) PeriodFinish() (uint64, error) {
	return p.storage.getPeriodFinish()
}

// RewardsDuration returns the fixed length of a funding period.
func (p *Pool) RewardsDuration() (uint64, error) {
	return p.storage.getRewardsDuration()
}

// BurnRate returns the exit penalty percentage.
func (p *Pool) BurnRate() (uint64, error) {
	return p.storage.getBurnRate()
}

//
// Setters - state change
//

// checkpoint realizes accrual up to now into stored state and, when an
// account is given, settles that account's entitlement against the
// accumulator. It runs first in every mutating entry point; funding passes
// a nil account for the global-only form.
func (p *Pool) checkpoint(now uint64, account *demeter.Address) error {
	perUnit, err := p.RewardPerUnit(now)
	if err != nil {
		return err
	}
	finish, err := p.storage.getPeriodFinish()
	if err != nil {
		return err
	}
	p.storage.setRewardPerUnit(perUnit)
	p.storage.setLastUpdateTime(lastApplicableTime(now, finish))

	if account == nil {
		return nil
	}
	pos, err := p.storage.getPosition(*account)
	if err != nil {
		return err
	}
	pos.RewardsOwed = accruedReward(pos.Staked, perUnit, pos.RewardPerUnitPaid, pos.RewardsOwed)
	pos.RewardPerUnitPaid = new(big.Int).Set(perUnit)
	return p.storage.setPosition(*account, pos)
}

// Stake locks amount of the stake asset for caller. The asset moves into
// pool custody only after the ledger is updated.
func (p *Pool) Stake(caller demeter.Address, amount *big.Int, now uint64) error {
	logger.Debug("staking", "caller", caller, "amount", amount, "now", now)

	return p.guarded(func() error {
		if err := p.checkpoint(now, &caller); err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			logger.Info("stake failed", "caller", caller, "error", ErrInvalidAmount)
			return ErrInvalidAmount
		}

		// ledger first
		if err := p.storage.addTotalStaked(amount); err != nil {
			return err
		}
		pos, err := p.storage.getPosition(caller)
		if err != nil {
			return err
		}
		pos.Staked.Add(pos.Staked, amount)
		if err := p.storage.setPosition(caller, pos); err != nil {
			return err
		}

		// pull the asset last
		if err := p.stake.Transfer(caller, p.addr, amount); err != nil {
			logger.Info("stake failed", "caller", caller, "error", err)
			return err
		}

		p.events.Add(events.NewStaked(p.addr, caller, amount))
		logger.Info("staked", "caller", caller, "amount", amount)
		return nil
	})
}

// Withdraw releases amount of staked asset back to caller, net of the
// burn penalty. The full amount leaves the ledger: the burned portion is
// destroyed from custody, the remainder is transferred back. Returns the
// amount actually sent.
func (p *Pool) Withdraw(caller demeter.Address, amount *big.Int, now uint64) (*big.Int, error) {
	logger.Debug("withdrawing", "caller", caller, "amount", amount, "now", now)

	var sent *big.Int
	err := p.guarded(func() error {
		var err error
		sent, err = p.withdraw(caller, amount, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}

// withdraw is the unguarded withdrawal path, shared with Unstake.
func (p *Pool) withdraw(caller demeter.Address, amount *big.Int, now uint64) (*big.Int, error) {
	if err := p.checkpoint(now, &caller); err != nil {
		return nil, err
	}
	if amount.Sign() <= 0 {
		logger.Info("withdraw failed", "caller", caller, "error", ErrInvalidAmount)
		return nil, ErrInvalidAmount
	}
	pos, err := p.storage.getPosition(caller)
	if err != nil {
		return nil, err
	}
	if pos.Staked.Cmp(amount) < 0 {
		logger.Info("withdraw failed", "caller", caller, "error", ErrInsufficientBalance)
		return nil, ErrInsufficientBalance
	}
	burnRate, err := p.storage.getBurnRate()
	if err != nil {
		return nil, err
	}

	// sendAmount + burnAmount == amount, exactly
	burnAmount := new(big.Int).SetUint64(burnRate)
	burnAmount.Mul(burnAmount, amount)
	burnAmount.Div(burnAmount, big.NewInt(100))
	sendAmount := new(big.Int).Sub(amount, burnAmount)

	// the full amount leaves the ledger
	if err := p.storage.subTotalStaked(amount); err != nil {
		return nil, err
	}
	pos.Staked.Sub(pos.Staked, amount)
	if err := p.storage.setPosition(caller, pos); err != nil {
		return nil, err
	}

	// destroy the burned portion, send the rest back
	if burnAmount.Sign() > 0 {
		if err := p.stake.Burn(p.addr, burnAmount); err != nil {
			logger.Info("withdraw failed", "caller", caller, "error", err)
			return nil, err
		}
	}
	if err := p.stake.Transfer(p.addr, caller, sendAmount); err != nil {
		logger.Info("withdraw failed", "caller", caller, "error", err)
		return nil, err
	}

	p.events.Add(events.NewWithdrawn(p.addr, caller, sendAmount))
	logger.Info("withdrawn", "caller", caller, "amount", amount, "burned", burnAmount, "sent", sendAmount)
	return sendAmount, nil
}

// Claim pays out the caller's accrued reward, zeroing the entitlement
// before the asset moves. Claiming with nothing owed succeeds, pays zero
// and emits nothing.
func (p *Pool) Claim(caller demeter.Address, now uint64) (*big.Int, error) {
	logger.Debug("claiming", "caller", caller, "now", now)

	var paid *big.Int
	err := p.guarded(func() error {
		var err error
		paid, err = p.claim(caller, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// claim is the unguarded claim path, shared with Unstake.
func (p *Pool) claim(caller demeter.Address, now uint64) (*big.Int, error) {
	if err := p.checkpoint(now, &caller); err != nil {
		return nil, err
	}
	pos, err := p.storage.getPosition(caller)
	if err != nil {
		return nil, err
	}
	owed := pos.RewardsOwed
	if owed.Sign() == 0 {
		return new(big.Int), nil
	}

	// zero the entitlement before the asset moves
	pos.RewardsOwed = new(big.Int)
	if err := p.storage.setPosition(caller, pos); err != nil {
		return nil, err
	}
	if err := p.reward.Transfer(p.addr, caller, owed); err != nil {
		logger.Info("claim failed", "caller", caller, "error", err)
		return nil, err
	}

	p.events.Add(events.NewRewardPaid(p.addr, caller, owed))
	logger.Info("reward paid", "caller", caller, "amount", owed)
	return owed, nil
}

// Unstake withdraws the caller's full staked balance and claims the
// accrued reward in one composed operation. Returns the amount sent back
// and the reward paid.
func (p *Pool) Unstake(caller demeter.Address, now uint64) (*big.Int, *big.Int, error) {
	logger.Debug("unstaking", "caller", caller, "now", now)

	var sent, paid *big.Int
	err := p.guarded(func() error {
		pos, err := p.storage.getPosition(caller)
		if err != nil {
			return err
		}
		if sent, err = p.withdraw(caller, pos.Staked, now); err != nil {
			return err
		}
		if paid, err = p.claim(caller, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("unstaked", "caller", caller, "sent", sent, "paid", paid)
	return sent, paid, nil
}
