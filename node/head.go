// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/state"
)

var (
	headAddress = demeter.BytesToAddress([]byte("head"))
	headKey     = demeter.BytesToBytes32([]byte("head"))
)

// head is the position of the operation history. It commits in the same
// stage as the operation that moved it, so sequence numbers and the time
// basis survive restarts without a separate store. Sequences start at one,
// a zero head means nothing was applied yet.
type head struct {
	Seq  uint64
	Time uint64
}

func readHead(st *state.State) (*head, error) {
	var h head
	if err := st.GetStructuredStorage(headAddress, headKey, &h); err != nil {
		return nil, errors.Wrap(err, "failed to get head")
	}
	return &h, nil
}

func writeHead(st *state.State, h *head) error {
	return st.SetStructuredStorage(headAddress, headKey, h)
}
