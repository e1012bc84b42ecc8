// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the structured storage of the pool ledger.
// It follows the flow as below:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ staging ] -> [ kv batch ]
//	          |
//	   [ value cache ]
//	          |
//	 [ committed store ]
//
// Storage is a flat (address, key) -> raw value space. Writes are
// journaled and become visible to the committed store only when a
// stage is committed, so a discarded state instance leaves no trace.
package state
