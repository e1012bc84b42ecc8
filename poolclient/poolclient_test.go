// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poolclient_test

import (
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demeterfi/demeter/api"
	"github.com/demeterfi/demeter/builtin"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/lvldb"
	"github.com/demeterfi/demeter/node"
	"github.com/demeterfi/demeter/pool"
	"github.com/demeterfi/demeter/poolclient"
	"github.com/demeterfi/demeter/state"
)

const t0 = uint64(1700000000)

var (
	owner       = demeter.BytesToAddress([]byte("owner-account"))
	distributor = demeter.BytesToAddress([]byte("distributor-account"))
	staker      = demeter.BytesToAddress([]byte("staker-account"))
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newTestClient(t *testing.T) (*poolclient.Client, *node.ManualClock) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	stater := state.NewStater(store)
	st := stater.NewState()
	require.NoError(t, builtin.Roles.WithState(st).SetOwner(owner))
	require.NoError(t, builtin.Roles.WithState(st).SetDistributor(distributor))
	require.NoError(t, builtin.Pool.WithState(st, &events.Collector{}).Init(604800, 2))
	require.NoError(t, builtin.Seed.WithState(st).Mint(staker, units(1000000)))
	require.NoError(t, builtin.Grain.WithState(st).Mint(builtin.Pool.Address, units(1000000)))
	require.NoError(t, st.Stage().Commit())

	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	clock := node.NewManualClock(t0)
	srv := httptest.NewServer(api.New(node.New(stater, db, clock), api.Options{AllowedOrigins: "*"}))
	t.Cleanup(srv.Close)

	return poolclient.New(srv.URL), clock
}

func TestClientRoundTrip(t *testing.T) {
	c, clock := newTestClient(t)

	status, err := c.Status()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), status.BurnRate)

	receipt, err := c.Stake(staker, units(1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), receipt.Seq)

	_, err = c.Fund(distributor, units(7000))
	require.NoError(t, err)

	clock.Advance(1000)

	acc, err := c.Account(staker)
	require.NoError(t, err)
	assert.Equal(t, units(1000), (*big.Int)(acc.Staked))
	assert.True(t, (*big.Int)(acc.Earned).Sign() > 0, "reward should accrue over time")

	receipt, err = c.Withdraw(staker, units(100))
	require.NoError(t, err)
	// 2% burn
	assert.Equal(t, units(98), (*big.Int)(receipt.SendAmount))

	receipt, err = c.Unstake(staker)
	require.NoError(t, err)
	assert.True(t, (*big.Int)(receipt.Paid).Sign() > 0)

	evs, err := c.FilterEvents(nil)
	require.NoError(t, err)
	assert.True(t, len(evs) >= 4)
}

func TestClientErrors(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Stake(staker, big.NewInt(0))
	require.ErrorIs(t, err, poolclient.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), pool.ErrInvalidAmount.Error())

	_, err = c.Fund(staker, units(1))
	require.ErrorIs(t, err, poolclient.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestClientSubscription(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Stake(staker, units(10))
	require.NoError(t, err)

	sub, err := c.SubscribeEvents(0)
	require.NoError(t, err)
	defer sub.Close()

	ev, err := sub.Next()
	require.NoError(t, err)
	assert.Equal(t, events.Staked, ev.Name)
	assert.Equal(t, uint64(1), ev.Seq)
}
