// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// StorageEncoder is the interface of custom storage encoding.
// Returning nil data clears the storage value, which keeps
// zero-valued entries out of the store.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder is the interface of custom storage decoding.
// It is fed the raw value, which is empty if the entry is absent.
type StorageDecoder interface {
	Decode(data []byte) error
}
