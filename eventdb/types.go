// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
)

// StoredEvent is an events.Event annotated with its position in the
// operation history: the sequence number of the operation that emitted it,
// the index within that operation, and the operation time.
type StoredEvent struct {
	Seq     uint64
	Index   uint32
	Time    uint64
	Address demeter.Address
	Name    string
	Account *demeter.Address
	Amount  *big.Int
}

// NewStoredEvent annotates ev with its history position.
func NewStoredEvent(seq uint64, index uint32, time uint64, ev *events.Event) *StoredEvent {
	return &StoredEvent{
		Seq:     seq,
		Index:   index,
		Time:    time,
		Address: ev.Address,
		Name:    ev.Name,
		Account: ev.Account,
		Amount:  ev.Amount,
	}
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds a query by operation sequence or operation time, inclusive
// on both ends.
type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Criteria matches events by name and/or account. A zero field matches
// anything.
type Criteria struct {
	Name    string
	Account *demeter.Address
}

// Filter selects stored events. Criteria are OR-ed, everything else is
// AND-ed. Order defaults to ascending.
type Filter struct {
	CriteriaSet []*Criteria
	Range       *Range
	Options     *Options
	Order       Order
}
