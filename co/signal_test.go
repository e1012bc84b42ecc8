// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demeterfi/demeter/co"
)

func TestSignalBeforeWait(t *testing.T) {
	var sig co.Signal
	sig.Signal()

	<-sig.NewWaiter().C()
}

func TestSignalAfterWait(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()
	sig.Signal()
	<-w.C()
}

func TestSignalWakesOneWaiter(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for i := 0; i < 10; i++ {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Signal()

	var woken int
	for _, w := range ws {
		select {
		case v := <-w.C():
			assert.True(t, v)
			woken++
		default:
		}
	}
	assert.Equal(t, 1, woken)
}

func TestBroadcastWakesAllWaiters(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for i := 0; i < 10; i++ {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Broadcast()

	var woken int
	for _, w := range ws {
		select {
		case v := <-w.C():
			assert.False(t, v)
			woken++
		default:
		}
	}
	assert.Equal(t, 10, woken)
}

func TestWaiterFollowsBroadcasts(t *testing.T) {
	// one waiter observes every broadcast, not only the first
	var sig co.Signal
	w := sig.NewWaiter()

	for i := 0; i < 3; i++ {
		sig.Broadcast()
		select {
		case <-w.C():
		default:
			t.Fatalf("broadcast %d was not observed", i)
		}
	}
}
