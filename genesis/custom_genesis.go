// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/demeterfi/demeter/demeter"
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	LaunchTime      uint64          `json:"launchTime"`
	Name            string          `json:"name"`
	Owner           demeter.Address `json:"owner"`
	Distributor     demeter.Address `json:"distributor"`
	RewardsDuration uint64          `json:"rewardsDuration"`
	BurnRate        uint64          `json:"burnRate"`
	Accounts        []Account       `json:"accounts"`
}

// Account is a token allocation set in the genesis state. Stake units go
// to the account's own balance; reward units allocated to the pool
// component address land in pool custody, ready to be funded.
type Account struct {
	Address demeter.Address  `json:"address"`
	Stake   *HexOrDecimal256 `json:"stake"`
	Reward  *HexOrDecimal256 `json:"reward"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json.Marshaler.
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		if err = (*big.Int)(i).UnmarshalJSON(input); err != nil {
			return err
		}
		return nil
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
