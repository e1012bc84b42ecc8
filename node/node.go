// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node applies pool operations one at a time over the committed
// state. Every operation runs on a fresh journaled state: on success the
// changes commit in one batch together with the moved history head, on
// failure the state is dropped whole, so a rejected operation leaves no
// trace, not even an event.
package node

import (
	"context"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/builtin"
	"github.com/demeterfi/demeter/co"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/log"
	"github.com/demeterfi/demeter/pool"
	"github.com/demeterfi/demeter/state"
)

var logger = log.WithContext("pkg", "node")

// Operation kinds, used in logs and metric labels.
const (
	OpStake          = "stake"
	OpWithdraw       = "withdraw"
	OpUnstake        = "unstake"
	OpClaim          = "claim"
	OpFund           = "fund"
	OpSetBurnRate    = "set-burn-rate"
	OpSetDistributor = "set-distributor"
)

// Node is the serialized executor of pool operations. All exported
// methods are safe for concurrent use.
type Node struct {
	stater *state.Stater
	db     *eventdb.EventDB // nil disables the event history
	clock  Clock

	lock sync.RWMutex // write-held while an operation commits
	tick co.Signal    // broadcast after each applied operation
}

// New creates a node over the committed store. A nil clock falls back to
// the system clock.
func New(stater *state.Stater, db *eventdb.EventDB, clock Clock) *Node {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Node{
		stater: stater,
		db:     db,
		clock:  clock,
	}
}

// output carries the value results of an operation into its receipt.
type output struct {
	sendAmount *big.Int
	paid       *big.Int
}

// Stake moves amount of the stake asset from caller into pool custody.
func (n *Node) Stake(caller demeter.Address, amount *big.Int) (*Receipt, error) {
	return n.apply(OpStake, func(p *pool.Pool, now uint64) (*output, error) {
		if err := p.Stake(caller, amount, now); err != nil {
			return nil, err
		}
		return &output{}, nil
	})
}

// Withdraw removes amount from caller's position, burning the configured
// percentage on the way out.
func (n *Node) Withdraw(caller demeter.Address, amount *big.Int) (*Receipt, error) {
	return n.apply(OpWithdraw, func(p *pool.Pool, now uint64) (*output, error) {
		sent, err := p.Withdraw(caller, amount, now)
		if err != nil {
			return nil, err
		}
		return &output{sendAmount: sent}, nil
	})
}

// Unstake withdraws caller's whole position and claims the reward in one
// operation.
func (n *Node) Unstake(caller demeter.Address) (*Receipt, error) {
	return n.apply(OpUnstake, func(p *pool.Pool, now uint64) (*output, error) {
		sent, paid, err := p.Unstake(caller, now)
		if err != nil {
			return nil, err
		}
		return &output{sendAmount: sent, paid: paid}, nil
	})
}

// Claim pays out caller's accrued reward.
func (n *Node) Claim(caller demeter.Address) (*Receipt, error) {
	return n.apply(OpClaim, func(p *pool.Pool, now uint64) (*output, error) {
		paid, err := p.Claim(caller, now)
		if err != nil {
			return nil, err
		}
		return &output{paid: paid}, nil
	})
}

// Fund schedules reward units for distribution over the next period.
// Only the distributor may fund.
func (n *Node) Fund(caller demeter.Address, reward *big.Int) (*Receipt, error) {
	return n.apply(OpFund, func(p *pool.Pool, now uint64) (*output, error) {
		if err := p.NotifyReward(caller, reward, now); err != nil {
			return nil, err
		}
		return &output{}, nil
	})
}

// SetBurnRate updates the withdrawal burn percentage. Only the owner may
// call.
func (n *Node) SetBurnRate(caller demeter.Address, rate uint64) (*Receipt, error) {
	return n.apply(OpSetBurnRate, func(p *pool.Pool, _ uint64) (*output, error) {
		if err := p.SetBurnRate(caller, rate); err != nil {
			return nil, err
		}
		return &output{}, nil
	})
}

// SetDistributor hands the funding role to another address. Only the
// owner may call.
func (n *Node) SetDistributor(caller, distributor demeter.Address) (*Receipt, error) {
	return n.apply(OpSetDistributor, func(p *pool.Pool, _ uint64) (*output, error) {
		if err := p.SetDistributor(caller, distributor); err != nil {
			return nil, err
		}
		return &output{}, nil
	})
}

func (n *Node) apply(kind string, op func(*pool.Pool, uint64) (*output, error)) (*Receipt, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	startTime := mclock.Now()

	st := n.stater.NewState()
	h, err := readHead(st)
	if err != nil {
		return nil, err
	}

	// history time never runs backwards
	now := n.clock.Now()
	if now < h.Time {
		now = h.Time
	}

	sink := &events.Collector{}
	p := builtin.Pool.WithState(st, sink)

	out, err := op(p, now)
	if err != nil {
		metricOpCount().AddWithLabel(1, opLabels(kind, "rejected"))
		logger.Debug("operation rejected", "op", kind, "error", err)
		return nil, err
	}

	h.Seq++
	h.Time = now
	if err := writeHead(st, h); err != nil {
		return nil, err
	}
	if err := st.Stage().Commit(); err != nil {
		logger.Error("failed to commit state", "op", kind, "seq", h.Seq, "error", err)
		return nil, errors.Wrap(err, "failed to commit state")
	}

	// the history records events only after the state committed
	if n.db != nil && len(sink.Events()) > 0 {
		stored := make([]*eventdb.StoredEvent, 0, len(sink.Events()))
		for i, ev := range sink.Events() {
			stored = append(stored, eventdb.NewStoredEvent(h.Seq, uint32(i), now, ev))
		}
		if err := n.db.Insert(stored); err != nil {
			logger.Error("failed to record events", "op", kind, "seq", h.Seq, "error", err)
			return nil, errors.Wrap(err, "failed to record events")
		}
	}
	n.tick.Broadcast()

	if total, err := p.TotalStaked(); err == nil {
		// stake amounts are opaque units; the gauge saturates at MaxInt64
		staked := int64(math.MaxInt64)
		if total.IsInt64() {
			staked = total.Int64()
		}
		metricTotalStaked().Set(staked)
	}
	if finish, err := p.PeriodFinish(); err == nil {
		metricPeriodFinish().Set(int64(finish))
	}
	metricOpCount().AddWithLabel(1, opLabels(kind, "applied"))
	metricOpDuration().ObserveWithLabels(time.Duration(mclock.Now()-startTime).Milliseconds(), map[string]string{"op": kind})

	logger.Debug("applied operation", "op", kind, "seq", h.Seq, "time", now, "events", len(sink.Events()))

	return &Receipt{
		Seq:        h.Seq,
		Time:       now,
		Events:     sink.Events(),
		SendAmount: out.sendAmount,
		Paid:       out.paid,
	}, nil
}

// Head returns the sequence and time of the last applied operation, both
// zero right after genesis.
func (n *Node) Head() (seq, time uint64, err error) {
	n.lock.RLock()
	defer n.lock.RUnlock()

	h, err := readHead(n.stater.NewState())
	if err != nil {
		return 0, 0, err
	}
	return h.Seq, h.Time, nil
}

// Status reads a consistent snapshot of the pool.
func (n *Node) Status() (*Status, error) {
	n.lock.RLock()
	defer n.lock.RUnlock()

	st := n.stater.NewState()
	h, err := readHead(st)
	if err != nil {
		return nil, err
	}
	now := n.clock.Now()
	if now < h.Time {
		now = h.Time
	}

	p := builtin.Pool.WithState(st, &events.Collector{})

	total, err := p.TotalStaked()
	if err != nil {
		return nil, err
	}
	rate, err := p.RewardRate()
	if err != nil {
		return nil, err
	}
	perUnit, err := p.RewardPerUnit(now)
	if err != nil {
		return nil, err
	}
	finish, err := p.PeriodFinish()
	if err != nil {
		return nil, err
	}
	duration, err := p.RewardsDuration()
	if err != nil {
		return nil, err
	}
	burnRate, err := p.BurnRate()
	if err != nil {
		return nil, err
	}
	reg := builtin.Roles.WithState(st)
	owner, err := reg.Owner()
	if err != nil {
		return nil, err
	}
	distributor, err := reg.Distributor()
	if err != nil {
		return nil, err
	}

	return &Status{
		Seq:             h.Seq,
		Time:            now,
		TotalStaked:     total,
		RewardRate:      rate,
		RewardPerUnit:   perUnit,
		PeriodFinish:    finish,
		RewardsDuration: duration,
		BurnRate:        burnRate,
		Owner:           owner,
		Distributor:     distributor,
	}, nil
}

// Account reads a consistent snapshot of one account's position and
// token balances.
func (n *Node) Account(addr demeter.Address) (*Account, error) {
	n.lock.RLock()
	defer n.lock.RUnlock()

	st := n.stater.NewState()
	h, err := readHead(st)
	if err != nil {
		return nil, err
	}
	now := n.clock.Now()
	if now < h.Time {
		now = h.Time
	}

	p := builtin.Pool.WithState(st, &events.Collector{})

	staked, err := p.BalanceOf(addr)
	if err != nil {
		return nil, err
	}
	earned, err := p.Earned(addr, now)
	if err != nil {
		return nil, err
	}
	seed, err := builtin.Seed.WithState(st).BalanceOf(addr)
	if err != nil {
		return nil, err
	}
	grain, err := builtin.Grain.WithState(st).BalanceOf(addr)
	if err != nil {
		return nil, err
	}

	return &Account{
		Address:      addr,
		Staked:       staked,
		Earned:       earned,
		SeedBalance:  seed,
		GrainBalance: grain,
	}, nil
}

// HasEventHistory reports whether the node records events durably.
func (n *Node) HasEventHistory() bool {
	return n.db != nil
}

// FilterEvents queries the recorded event history.
func (n *Node) FilterEvents(ctx context.Context, filter *eventdb.Filter) ([]*eventdb.StoredEvent, error) {
	if n.db == nil {
		return nil, errors.New("event history disabled")
	}
	return n.db.Filter(ctx, filter)
}

// NewTicker creates a signal waiter that fires whenever an operation is
// applied, for followers of the event history.
func (n *Node) NewTicker() co.Waiter {
	return n.tick.NewWaiter()
}
