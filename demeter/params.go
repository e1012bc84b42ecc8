// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package demeter

import "math/big"

// Constants of the pool ledger.
const (
	// MaxBurnRate is the upper bound of the withdrawal burn percentage.
	MaxBurnRate uint64 = 10

	// DefaultRewardsDuration is the length of a reward period in seconds (7 days).
	DefaultRewardsDuration uint64 = 604800
)

// RewardScale is the fixed-point scale of reward-per-unit accounting.
var RewardScale = big.NewInt(1e18)
