// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events defines the observable ledger events and the per-operation
// collector. Events become durable only after the operation that emitted
// them commits; an aborted operation leaves no trace.
package events

import (
	"math/big"

	"github.com/demeterfi/demeter/demeter"
)

// Names of the ledger events.
const (
	RewardAdded = "RewardAdded"
	Staked      = "Staked"
	Withdrawn   = "Withdrawn"
	RewardPaid  = "RewardPaid"
)

// Event is one observable ledger event emitted by a component during a
// successful operation.
type Event struct {
	Address demeter.Address  // emitting component
	Name    string           // one of the names above
	Account *demeter.Address // subject account, nil for pool-wide events
	Amount  *big.Int
}

// Events is an ordered list of events.
type Events []*Event

// NewRewardAdded records reward units scheduled for distribution.
func NewRewardAdded(pool demeter.Address, amount *big.Int) *Event {
	return &Event{
		Address: pool,
		Name:    RewardAdded,
		Amount:  new(big.Int).Set(amount),
	}
}

// NewStaked records a stake of amount by account.
func NewStaked(pool, account demeter.Address, amount *big.Int) *Event {
	return &Event{
		Address: pool,
		Name:    Staked,
		Account: &account,
		Amount:  new(big.Int).Set(amount),
	}
}

// NewWithdrawn records the amount actually sent back to account on
// withdrawal, net of the burned portion.
func NewWithdrawn(pool, account demeter.Address, sendAmount *big.Int) *Event {
	return &Event{
		Address: pool,
		Name:    Withdrawn,
		Account: &account,
		Amount:  new(big.Int).Set(sendAmount),
	}
}

// NewRewardPaid records a reward payout to account.
func NewRewardPaid(pool, account demeter.Address, amount *big.Int) *Event {
	return &Event{
		Address: pool,
		Name:    RewardPaid,
		Account: &account,
		Amount:  new(big.Int).Set(amount),
	}
}

// Collector accumulates the events of one operation, in emission order.
// The zero value is ready to use.
type Collector struct {
	events Events
}

// Add appends ev to the collected events.
func (c *Collector) Add(ev *Event) {
	c.events = append(c.events, ev)
}

// Events returns the collected events in emission order.
func (c *Collector) Events() Events {
	return c.events
}

// Reset drops all collected events.
func (c *Collector) Reset() {
	c.events = c.events[:0]
}
