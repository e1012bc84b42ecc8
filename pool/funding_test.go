// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
)

func TestNotifyReward(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))

	rate, err := l.pool.RewardRate()
	require.NoError(t, err)
	assert.Equal(t, "11574074074074074", rate.String())

	finish, err := l.pool.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, t0+testDuration, finish)

	evs := l.sink.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.RewardAdded, evs[0].Name)
	assert.Nil(t, evs[0].Account)
	assert.Equal(t, units(7000), evs[0].Amount)
}

func TestNotifyRewardUnauthorized(t *testing.T) {
	l := newTestLedger(t)

	err := l.pool.NotifyReward(l.staker, units(1), t0)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, l.sink.Events())
}

func TestNotifyRewardOverflow(t *testing.T) {
	l := newTestLedger(t)

	// the largest fundable reward is uint256max / SCALE
	max := new(big.Int).Div(
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
		demeter.RewardScale,
	)
	require.NoError(t, l.pool.NotifyReward(l.distributor, max, t0))

	err := l.pool.NotifyReward(l.distributor, new(big.Int).Add(max, big.NewInt(1)), t0)
	assert.ErrorIs(t, err, ErrRewardOverflow)

	err = l.pool.NotifyReward(l.distributor, big.NewInt(-1), t0)
	assert.ErrorIs(t, err, ErrRewardOverflow)
}

func TestNotifyRewardMidPeriodBlend(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))
	rate1, err := l.pool.RewardRate()
	require.NoError(t, err)

	// top up half way through: newRate == (reward + remaining*rate1) / duration
	halfway := t0 + testDuration/2
	require.NoError(t, l.pool.NotifyReward(l.distributor, units(3000), halfway))

	leftover := new(big.Int).Mul(big.NewInt(int64(testDuration/2)), rate1)
	expected := new(big.Int).Add(units(3000), leftover)
	expected.Div(expected, big.NewInt(int64(testDuration)))

	rate2, err := l.pool.RewardRate()
	require.NoError(t, err)
	assert.Equal(t, expected, rate2)

	// the window restarted from the top-up time
	finish, err := l.pool.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, halfway+testDuration, finish)
}

func TestNotifyRewardAfterExpiry(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))

	// a fresh period after expiry carries no leftover
	later := t0 + testDuration + 1000
	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), later))

	rate, err := l.pool.RewardRate()
	require.NoError(t, err)
	assert.Equal(t, "11574074074074074", rate.String())

	finish, err := l.pool.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, later+testDuration, finish)
}

func TestNotifyRewardTwiceSameInstant(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))
	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))

	// the second call blends exactly one leftover, never two:
	// (7000e18 + 604800*rate1) / 604800
	rate, err := l.pool.RewardRate()
	require.NoError(t, err)
	assert.Equal(t, "23148148148148148", rate.String())

	finish, err := l.pool.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, t0+testDuration, finish)

	last, err := l.pool.LastApplicableTime(t0)
	require.NoError(t, err)
	assert.Equal(t, t0, last)
}

func TestNotifyRewardDoesNotMoveFunds(t *testing.T) {
	l := newTestLedger(t)

	before, err := l.grain.BalanceOf(l.pool.Address())
	require.NoError(t, err)

	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))

	after, err := l.grain.BalanceOf(l.pool.Address())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAccrualAcrossRefunding(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0))
	require.NoError(t, l.pool.Stake(l.staker, units(1000), t0))

	// accrual settled under the old rate survives a mid-period refunding
	earnedBefore, err := l.pool.Earned(l.staker, t0+100000)
	require.NoError(t, err)

	require.NoError(t, l.pool.NotifyReward(l.distributor, units(7000), t0+100000))

	earnedAfter, err := l.pool.Earned(l.staker, t0+100000)
	require.NoError(t, err)
	assert.Equal(t, earnedBefore, earnedAfter)
}
