// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/demeterfi/demeter/demeter"
)

func RandBytes32() (b demeter.Bytes32) {
	rand.Read(b[:])
	return
}

func RandAddress() (addr demeter.Address) {
	rand.Read(addr[:])
	return
}
