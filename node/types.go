// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"math/big"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
)

// Receipt describes one applied operation.
type Receipt struct {
	Seq        uint64
	Time       uint64
	Events     events.Events
	SendAmount *big.Int // withdrawn stake net of the burned portion, set by withdraw and unstake
	Paid       *big.Int // reward paid out, set by claim and unstake
}

// Status is a snapshot of the pool readings. Accrual views use Time as
// their basis, the later of the clock and the last operation.
type Status struct {
	Seq             uint64
	Time            uint64
	TotalStaked     *big.Int
	RewardRate      *big.Int
	RewardPerUnit   *big.Int
	PeriodFinish    uint64
	RewardsDuration uint64
	BurnRate        uint64
	Owner           demeter.Address
	Distributor     demeter.Address
}

// Account is the pool position of one account, with its token balances.
type Account struct {
	Address      demeter.Address
	Staked       *big.Int
	Earned       *big.Int
	SeedBalance  *big.Int
	GrainBalance *big.Int
}
