// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/lvldb"
)

func newTestState(t *testing.T) (*Stater, *State) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	t.Cleanup(func() { db.Close() })

	stater := NewStater(db)
	return stater, stater.NewState()
}

func TestStorage(t *testing.T) {
	_, st := newTestState(t)

	addr := demeter.BytesToAddress([]byte("addr"))
	key := demeter.BytesToBytes32([]byte("key"))
	value := demeter.BytesToBytes32([]byte("value"))

	// unset storage reads as zero
	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	st.SetStorage(addr, key, value)
	v, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	// zero value clears the entry
	st.SetStorage(addr, key, demeter.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Zero(t, len(raw))
}

func TestCheckpointRevert(t *testing.T) {
	_, st := newTestState(t)

	addr := demeter.BytesToAddress([]byte("addr"))
	key := demeter.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, demeter.BytesToBytes32([]byte("v1")))

	chk := st.NewCheckpoint()
	st.SetStorage(addr, key, demeter.BytesToBytes32([]byte("v2")))

	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, demeter.BytesToBytes32([]byte("v2")), v)

	st.RevertTo(chk)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, demeter.BytesToBytes32([]byte("v1")), v)
}

func TestStageCommit(t *testing.T) {
	stater, st := newTestState(t)

	addr := demeter.BytesToAddress([]byte("addr"))
	key := demeter.BytesToBytes32([]byte("key"))
	value := demeter.BytesToBytes32([]byte("value"))

	st.SetStorage(addr, key, value)

	stage := st.Stage()
	assert.Equal(t, 1, stage.Len())
	assert.NoError(t, stage.Commit())

	// a fresh state sees committed values
	st2 := stater.NewState()
	v, err := st2.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	// an uncommitted state leaves no trace
	st3 := stater.NewState()
	st3.SetStorage(addr, key, demeter.BytesToBytes32([]byte("other")))

	st4 := stater.NewState()
	v, err = st4.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)
}

type testRecord struct {
	Amount *big.Int
	Count  uint64
}

func (r *testRecord) Encode() ([]byte, error) {
	if r.Amount.Sign() == 0 && r.Count == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(r)
}

func (r *testRecord) Decode(data []byte) error {
	if len(data) == 0 {
		*r = testRecord{&big.Int{}, 0}
		return nil
	}
	return rlp.DecodeBytes(data, r)
}

func TestStructuredStorage(t *testing.T) {
	_, st := newTestState(t)

	addr := demeter.BytesToAddress([]byte("addr"))
	key := demeter.BytesToBytes32([]byte("key"))

	// absent entry decodes to the zero record
	var rec testRecord
	assert.NoError(t, st.GetStructuredStorage(addr, key, &rec))
	assert.Equal(t, testRecord{&big.Int{}, 0}, rec)

	rec.Amount = big.NewInt(7)
	rec.Count = 3
	assert.NoError(t, st.SetStructuredStorage(addr, key, &rec))

	var loaded testRecord
	assert.NoError(t, st.GetStructuredStorage(addr, key, &loaded))
	assert.Equal(t, rec, loaded)

	// zero record encodes to nil and clears the entry
	assert.NoError(t, st.SetStructuredStorage(addr, key, &testRecord{&big.Int{}, 0}))
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Zero(t, len(raw))
}

func TestCommittedDelete(t *testing.T) {
	stater, st := newTestState(t)

	addr := demeter.BytesToAddress([]byte("addr"))
	key := demeter.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, demeter.BytesToBytes32([]byte("v")))
	assert.NoError(t, st.Stage().Commit())

	st2 := stater.NewState()
	st2.SetStorage(addr, key, demeter.Bytes32{})
	assert.NoError(t, st2.Stage().Commit())

	st3 := stater.NewState()
	v, err := st3.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())
}
