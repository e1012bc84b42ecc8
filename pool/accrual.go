// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/demeterfi/demeter/demeter"
)

// The accrual math is kept in pure functions over plain values so it can
// be tested without a state behind it. The accumulator integrates
// rate/totalStaked over time, scaled by demeter.RewardScale; it is exact
// between checkpoints because the rate is constant there. All divisions
// truncate toward zero.

// lastApplicableTime bounds now by the end of the active funding period.
// Accrual never runs past periodFinish.
func lastApplicableTime(now, periodFinish uint64) uint64 {
	if now < periodFinish {
		return now
	}
	return periodFinish
}

// accruedPerUnit extends the stored reward-per-unit accumulator over
// [lastUpdate, applicable]. With nothing staked the accumulator holds
// still: there is nobody to accrue to and nothing to divide by.
// Requires lastUpdate <= applicable, which the checkpoint discipline
// maintains.
func accruedPerUnit(stored, rate, totalStaked *big.Int, lastUpdate, applicable uint64) *big.Int {
	if totalStaked.Sign() == 0 {
		return stored
	}
	accrued := new(big.Int).SetUint64(applicable - lastUpdate)
	accrued.Mul(accrued, rate)
	accrued.Mul(accrued, demeter.RewardScale)
	accrued.Div(accrued, totalStaked)
	return accrued.Add(accrued, stored)
}

// accruedReward settles staked against the accumulator movement since the
// account's watermark, on top of what the account is already owed.
func accruedReward(staked, perUnit, watermark, owed *big.Int) *big.Int {
	delta := new(big.Int).Sub(perUnit, watermark)
	delta.Mul(delta, staked)
	delta.Div(delta, demeter.RewardScale)
	return delta.Add(delta, owed)
}
