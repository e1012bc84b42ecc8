// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/node"
)

// Status is the JSON form of the pool snapshot.
type Status struct {
	Seq             uint64                `json:"seq"`
	Time            uint64                `json:"time"`
	TotalStaked     *math.HexOrDecimal256 `json:"totalStaked"`
	RewardRate      *math.HexOrDecimal256 `json:"rewardRate"`
	RewardPerUnit   *math.HexOrDecimal256 `json:"rewardPerUnit"`
	PeriodFinish    uint64                `json:"periodFinish"`
	RewardsDuration uint64                `json:"rewardsDuration"`
	BurnRate        uint64                `json:"burnRate"`
	Owner           demeter.Address       `json:"owner"`
	Distributor     demeter.Address       `json:"distributor"`
}

func convertStatus(s *node.Status) *Status {
	return &Status{
		Seq:             s.Seq,
		Time:            s.Time,
		TotalStaked:     (*math.HexOrDecimal256)(s.TotalStaked),
		RewardRate:      (*math.HexOrDecimal256)(s.RewardRate),
		RewardPerUnit:   (*math.HexOrDecimal256)(s.RewardPerUnit),
		PeriodFinish:    s.PeriodFinish,
		RewardsDuration: s.RewardsDuration,
		BurnRate:        s.BurnRate,
		Owner:           s.Owner,
		Distributor:     s.Distributor,
	}
}

// Account is the JSON form of one account's position and token balances.
type Account struct {
	Address      demeter.Address       `json:"address"`
	Staked       *math.HexOrDecimal256 `json:"staked"`
	Earned       *math.HexOrDecimal256 `json:"earned"`
	SeedBalance  *math.HexOrDecimal256 `json:"seedBalance"`
	GrainBalance *math.HexOrDecimal256 `json:"grainBalance"`
}

func convertAccount(a *node.Account) *Account {
	return &Account{
		Address:      a.Address,
		Staked:       (*math.HexOrDecimal256)(a.Staked),
		Earned:       (*math.HexOrDecimal256)(a.Earned),
		SeedBalance:  (*math.HexOrDecimal256)(a.SeedBalance),
		GrainBalance: (*math.HexOrDecimal256)(a.GrainBalance),
	}
}

// Event is the JSON form of one ledger event.
type Event struct {
	Seq     uint64                `json:"seq"`
	Index   uint32                `json:"index"`
	Time    uint64                `json:"time"`
	Address demeter.Address       `json:"address"`
	Name    string                `json:"name"`
	Account *demeter.Address      `json:"account,omitempty"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

func convertStoredEvent(ev *eventdb.StoredEvent) *Event {
	return &Event{
		Seq:     ev.Seq,
		Index:   ev.Index,
		Time:    ev.Time,
		Address: ev.Address,
		Name:    ev.Name,
		Account: ev.Account,
		Amount:  (*math.HexOrDecimal256)(ev.Amount),
	}
}

// Receipt is the JSON form of an applied operation.
type Receipt struct {
	Seq        uint64                `json:"seq"`
	Time       uint64                `json:"time"`
	Events     []*Event              `json:"events"`
	SendAmount *math.HexOrDecimal256 `json:"sendAmount,omitempty"`
	Paid       *math.HexOrDecimal256 `json:"paid,omitempty"`
}

func convertReceipt(r *node.Receipt) *Receipt {
	evs := make([]*Event, len(r.Events))
	for i, ev := range r.Events {
		evs[i] = &Event{
			Seq:     r.Seq,
			Index:   uint32(i),
			Time:    r.Time,
			Address: ev.Address,
			Name:    ev.Name,
			Account: ev.Account,
			Amount:  (*math.HexOrDecimal256)(ev.Amount),
		}
	}
	return &Receipt{
		Seq:        r.Seq,
		Time:       r.Time,
		Events:     evs,
		SendAmount: (*math.HexOrDecimal256)(r.SendAmount),
		Paid:       (*math.HexOrDecimal256)(r.Paid),
	}
}

// Operation request bodies. The caller address is taken as given, the
// deployment boundary in front of the node is expected to authenticate it.
type (
	// StakeRequest submits a stake of Amount by Caller.
	StakeRequest struct {
		Caller demeter.Address       `json:"caller"`
		Amount *math.HexOrDecimal256 `json:"amount"`
	}

	// WithdrawRequest submits a withdrawal of Amount by Caller.
	WithdrawRequest struct {
		Caller demeter.Address       `json:"caller"`
		Amount *math.HexOrDecimal256 `json:"amount"`
	}

	// CallerRequest submits a caller-only operation (unstake, claim).
	CallerRequest struct {
		Caller demeter.Address `json:"caller"`
	}

	// FundRequest schedules Reward units for distribution.
	FundRequest struct {
		Caller demeter.Address       `json:"caller"`
		Reward *math.HexOrDecimal256 `json:"reward"`
	}

	// BurnRateRequest updates the withdrawal burn percentage.
	BurnRateRequest struct {
		Caller demeter.Address `json:"caller"`
		Rate   uint64          `json:"rate"`
	}

	// DistributorRequest hands the funding role to Distributor.
	DistributorRequest struct {
		Caller      demeter.Address `json:"caller"`
		Distributor demeter.Address `json:"distributor"`
	}
)

// EventCriteria matches events by name and/or account.
type EventCriteria struct {
	Name    string           `json:"name"`
	Account *demeter.Address `json:"account"`
}

// EventRange bounds an event query by operation sequence or time.
type EventRange struct {
	Unit string `json:"unit"`
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// EventOptions pages an event query.
type EventOptions struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventFilter is the JSON form of an event query.
type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *EventRange      `json:"range"`
	Options     *EventOptions    `json:"options"`
	Order       string           `json:"order"`
}

func convertEventFilter(filter *EventFilter) (*eventdb.Filter, error) {
	converted := &eventdb.Filter{
		Order: eventdb.ASC,
	}
	switch filter.Order {
	case "", string(eventdb.ASC):
	case string(eventdb.DESC):
		converted.Order = eventdb.DESC
	default:
		return nil, errors.Errorf("order: invalid value %q", filter.Order)
	}
	if filter.Range != nil {
		r := &eventdb.Range{From: filter.Range.From, To: filter.Range.To}
		switch filter.Range.Unit {
		case "", string(eventdb.Seq):
			r.Unit = eventdb.Seq
		case string(eventdb.Time):
			r.Unit = eventdb.Time
		default:
			return nil, errors.Errorf("range.unit: invalid value %q", filter.Range.Unit)
		}
		converted.Range = r
	}
	if filter.Options != nil {
		converted.Options = &eventdb.Options{
			Offset: filter.Options.Offset,
			Limit:  filter.Options.Limit,
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if criteria == nil {
			return nil, errors.Errorf("criteriaSet[%d]: null not allowed", i)
		}
		if criteria.Name != "" {
			switch criteria.Name {
			case events.RewardAdded, events.Staked, events.Withdrawn, events.RewardPaid:
			default:
				return nil, errors.Errorf("criteriaSet[%d].name: unknown event %q", i, criteria.Name)
			}
		}
		converted.CriteriaSet = append(converted.CriteriaSet, &eventdb.Criteria{
			Name:    criteria.Name,
			Account: criteria.Account,
		})
	}
	return converted, nil
}
