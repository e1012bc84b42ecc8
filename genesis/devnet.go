// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/demeterfi/demeter/builtin"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/state"
)

// DevAccount account for development.
type DevAccount struct {
	Address    demeter.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for the devnet.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"99f0500549792796c14fed62011a51081dc5b5e68dc8b158a70a8563267413f6",
		"7b067f53d350f1cf20ec13df416b7b73e88a1dc7331bc904b92108b1e76a08b1",
		"f4a1a17039216f535d42ec23732c79943ffb45a089fbb78a14daad0dae93e991",
		"35b5cc144faca7d7f220fca7ad3420090861d5231d80eb23e1013426847371c4",
		"10c851d8d6c6ed9e6f625742063f292f4cf57c2dbeea8099fa3aca53ef90aef1",
		"2dd2c5b5d65913214783a6bd5679d8c6ef29ca9f2e2eae98b4add061d5b85db0",
		"e1b72a1761ae189c10ec3783dd124b902ffd8c6b93cd9ff443d5490ce70047ff",
		"35cbc5ac0c3a2de0ca9d77262f5d85bc78d4c99f6d57c765ca8c48a5bb84552d",
		"b639c258292096306d2f60bc1a8da9bc434ad37f15cd44ee9a2526685f592220",
		"9d68178cdc934178cca0a0051f40ed46be153cf23cb1805b59cc612c0ad2bbe0",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{demeter.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// stake and reward units pre-alloced per dev account and to pool custody.
var (
	devStakeAlloc  = new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))
	devRewardAlloc = new(big.Int).Mul(big.NewInt(10_000_000), big.NewInt(1e18))
)

// NewDevnet creates the genesis of a local development network: the first
// dev account owns the pool and distributes rewards, every dev account
// holds stake units, and the whole reward supply already sits in pool
// custody so funding can be called right away.
func NewDevnet() *Genesis {
	launchTime := uint64(1735689600) // 'Wed Jan 01 2025 00:00:00 GMT+0000'

	owner := DevAccounts()[0].Address

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(state *state.State) error {
			seed := builtin.Seed.WithState(state)
			for _, acc := range DevAccounts() {
				if err := seed.Mint(acc.Address, devStakeAlloc); err != nil {
					return err
				}
			}
			if err := builtin.Grain.WithState(state).Mint(builtin.Pool.Address, devRewardAlloc); err != nil {
				return err
			}

			reg := builtin.Roles.WithState(state)
			if err := reg.SetOwner(owner); err != nil {
				return err
			}
			if err := reg.SetDistributor(owner); err != nil {
				return err
			}

			return builtin.Pool.WithState(state, &events.Collector{}).Init(demeter.DefaultRewardsDuration, 1)
		})

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}
	return &Genesis{builder, id, "devnet"}
}
