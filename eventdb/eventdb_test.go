// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/events"
)

var poolAddr = demeter.BytesToAddress([]byte("pool"))

func newTestDB(t *testing.T) *eventdb.EventDB {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

// fills the db with one staked and one withdrawn event per account, one
// operation per second starting at time 1000, sequences from 1.
func insertHistory(t *testing.T, db *eventdb.EventDB, accounts []demeter.Address) {
	var stored []*eventdb.StoredEvent
	for i, account := range accounts {
		seq := uint64(i + 1)
		time := uint64(1000 + i)
		stored = append(stored,
			eventdb.NewStoredEvent(seq, 0, time, events.NewStaked(poolAddr, account, big.NewInt(int64(100*(i+1))))),
			eventdb.NewStoredEvent(seq, 1, time, events.NewWithdrawn(poolAddr, account, big.NewInt(int64(10*(i+1))))),
		)
	}
	require.NoError(t, db.Insert(stored))
}

func testAccounts(n int) []demeter.Address {
	accounts := make([]demeter.Address, 0, n)
	for i := 0; i < n; i++ {
		accounts = append(accounts, demeter.BytesToAddress([]byte{byte(i + 1)}))
	}
	return accounts
}

func TestFilterAll(t *testing.T) {
	db := newTestDB(t)
	insertHistory(t, db, testAccounts(10))

	all, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 20)

	// ascending by (seq, index)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint32(0), all[0].Index)
	assert.Equal(t, uint32(1), all[1].Index)
	assert.Equal(t, uint64(10), all[19].Seq)
}

func TestFilterByName(t *testing.T) {
	db := newTestDB(t)
	insertHistory(t, db, testAccounts(10))

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		CriteriaSet: []*eventdb.Criteria{{Name: events.Staked}},
	})
	require.NoError(t, err)
	require.Len(t, got, 10)
	for _, ev := range got {
		assert.Equal(t, events.Staked, ev.Name)
	}
}

func TestFilterByAccount(t *testing.T) {
	db := newTestDB(t)
	accounts := testAccounts(10)
	insertHistory(t, db, accounts)

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		CriteriaSet: []*eventdb.Criteria{{Account: &accounts[3]}},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, events.Staked, got[0].Name)
	assert.Equal(t, "400", got[0].Amount.String())
	assert.Equal(t, events.Withdrawn, got[1].Name)
	assert.Equal(t, "40", got[1].Amount.String())
}

func TestFilterCriteriaUnion(t *testing.T) {
	db := newTestDB(t)
	accounts := testAccounts(10)
	insertHistory(t, db, accounts)

	// events of account 1 plus every withdrawal
	got, err := db.Filter(context.Background(), &eventdb.Filter{
		CriteriaSet: []*eventdb.Criteria{
			{Account: &accounts[0]},
			{Name: events.Withdrawn},
		},
	})
	require.NoError(t, err)
	assert.Len(t, got, 11)
}

func TestFilterSeqRange(t *testing.T) {
	db := newTestDB(t)
	insertHistory(t, db, testAccounts(10))

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		Range: &eventdb.Range{Unit: eventdb.Seq, From: 3, To: 5},
	})
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, uint64(3), got[0].Seq)
	assert.Equal(t, uint64(5), got[5].Seq)
}

func TestFilterTimeRange(t *testing.T) {
	db := newTestDB(t)
	insertHistory(t, db, testAccounts(10))

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		Range: &eventdb.Range{Unit: eventdb.Time, From: 1008, To: 2000},
	})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, uint64(1008), got[0].Time)
}

func TestFilterOrderAndOptions(t *testing.T) {
	db := newTestDB(t)
	insertHistory(t, db, testAccounts(10))

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 1, Limit: 3},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// newest first, offset skips the last withdrawal
	assert.Equal(t, uint64(10), got[0].Seq)
	assert.Equal(t, uint32(0), got[0].Index)
	assert.Equal(t, uint64(9), got[1].Seq)
	assert.Equal(t, uint32(1), got[1].Index)
}

func TestInsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	accounts := testAccounts(3)
	insertHistory(t, db, accounts)
	insertHistory(t, db, accounts)

	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(6), n)
}

func TestStoredEventRoundTrip(t *testing.T) {
	db := newTestDB(t)
	account := demeter.BytesToAddress([]byte("staker"))

	amount := new(big.Int).Mul(big.NewInt(7000), big.NewInt(1e18))
	in := eventdb.NewStoredEvent(7, 2, 1700000000, events.NewRewardPaid(poolAddr, account, amount))
	require.NoError(t, db.Insert([]*eventdb.StoredEvent{in}))

	got, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in.Seq, got[0].Seq)
	assert.Equal(t, in.Index, got[0].Index)
	assert.Equal(t, in.Time, got[0].Time)
	assert.Equal(t, poolAddr, got[0].Address)
	assert.Equal(t, events.RewardPaid, got[0].Name)
	require.NotNil(t, got[0].Account)
	assert.Equal(t, account, *got[0].Account)
	assert.Equal(t, amount.String(), got[0].Amount.String())
}

func TestRewardAddedHasNoAccount(t *testing.T) {
	db := newTestDB(t)

	in := eventdb.NewStoredEvent(1, 0, 1000, events.NewRewardAdded(poolAddr, big.NewInt(5)))
	require.NoError(t, db.Insert([]*eventdb.StoredEvent{in}))

	got, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Account)
}

func TestMaxSeq(t *testing.T) {
	db := newTestDB(t)

	seq, err := db.MaxSeq(context.Background())
	require.NoError(t, err)
	assert.Zero(t, seq)

	insertHistory(t, db, testAccounts(4))
	seq, err = db.MaxSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4), seq)
}
