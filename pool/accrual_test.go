// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastApplicableTime(t *testing.T) {
	tests := []struct {
		now          uint64
		periodFinish uint64
		expected     uint64
	}{
		{0, 0, 0},
		{100, 200, 100},
		{200, 200, 200},
		{300, 200, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, lastApplicableTime(tt.now, tt.periodFinish))
	}
}

func TestAccruedPerUnitZeroStake(t *testing.T) {
	stored := big.NewInt(12345)

	// nothing staked, the accumulator holds still regardless of elapsed time
	got := accruedPerUnit(stored, big.NewInt(1e9), new(big.Int), 0, 1000000)
	assert.Equal(t, "12345", got.String())
}

func TestAccruedPerUnitInterval(t *testing.T) {
	var (
		rate  = big.NewInt(11574074074074074)
		total = new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	)

	// 100000s at rate over 1000 units: 100000 * rate * 1e18 / 1000e18
	got := accruedPerUnit(new(big.Int), rate, total, 0, 100000)
	assert.Equal(t, "1157407407407407400", got.String())

	// accrual extends what is already stored
	got = accruedPerUnit(big.NewInt(100), rate, total, 0, 100000)
	assert.Equal(t, "1157407407407407500", got.String())

	// an empty interval adds nothing
	got = accruedPerUnit(big.NewInt(100), rate, total, 5000, 5000)
	assert.Equal(t, "100", got.String())
}

func TestAccruedPerUnitTruncates(t *testing.T) {
	// 7 units over 3 staked: 7*1e18/3 truncates toward zero
	got := accruedPerUnit(new(big.Int), big.NewInt(7), big.NewInt(3), 0, 1)
	assert.Equal(t, "2333333333333333333", got.String())
}

func TestAccruedReward(t *testing.T) {
	var (
		staked    = new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
		perUnit   = big.NewInt(1157407407407407400)
		watermark = new(big.Int)
	)

	got := accruedReward(staked, perUnit, watermark, new(big.Int))
	assert.Equal(t, "1157407407407407400000", got.String())

	// the watermark excludes accrual already settled
	got = accruedReward(staked, perUnit, perUnit, big.NewInt(42))
	assert.Equal(t, "42", got.String())

	// zero stake earns nothing beyond what is owed
	got = accruedReward(new(big.Int), perUnit, watermark, big.NewInt(7))
	assert.Equal(t, "7", got.String())
}
