// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "errors"

// Rule errors reject an operation before it takes effect. Anything else
// coming out of an entry point is a storage fault.
var (
	ErrInvalidAmount       = errors.New("pool: invalid amount")
	ErrInsufficientBalance = errors.New("pool: insufficient balance")
	ErrInvalidBurnRate     = errors.New("pool: invalid burn rate")
	ErrUnauthorized        = errors.New("pool: unauthorized")
	ErrRewardOverflow      = errors.New("pool: reward overflow")
	ErrReentrant           = errors.New("pool: reentrant call")
)

var ruleErrors = []error{
	ErrInvalidAmount,
	ErrInsufficientBalance,
	ErrInvalidBurnRate,
	ErrUnauthorized,
	ErrRewardOverflow,
	ErrReentrant,
}

// IsRuleError reports whether err is a ledger rule violation rather than
// a storage fault.
func IsRuleError(err error) bool {
	for _, rule := range ruleErrors {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}
