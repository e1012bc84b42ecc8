// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/api/restutil"
	"github.com/demeterfi/demeter/eventdb"
)

const (
	writeTimeout = 10 * time.Second
	pingPeriod   = 2 * time.Second
	streamBatch  = 256
)

// handleSubscribeEvents streams stored events over a websocket, starting
// right after the operation sequence given by the pos query parameter.
// With no pos the stream starts at the current head, delivering only new
// events.
func (a *API) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	if !a.node.HasEventHistory() {
		return restutil.Forbidden(errors.New("event history disabled"))
	}
	headSeq, _, err := a.node.Head()
	if err != nil {
		return err
	}
	pos := headSeq
	if q := req.URL.Query().Get("pos"); q != "" {
		parsed, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "pos"))
		}
		if parsed > headSeq {
			return restutil.BadRequest(errors.New("pos: in the future"))
		}
		pos = parsed
	}

	conn, err := a.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader responded already
		logger.Debug("failed to upgrade subscription", "error", err)
		return nil
	}
	defer conn.Close()

	// read pump, only to learn the peer went away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		// arm the waiter before reading, so an operation applied while
		// streaming is never missed
		waiter := a.node.NewTicker()

		for {
			stored, err := a.node.FilterEvents(req.Context(), &eventdb.Filter{
				Range:   &eventdb.Range{Unit: eventdb.Seq, From: pos + 1},
				Options: &eventdb.Options{Limit: streamBatch},
			})
			if err != nil {
				return err
			}
			for _, ev := range stored {
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(convertStoredEvent(ev)); err != nil {
					return nil
				}
				pos = ev.Seq
			}
			if uint64(len(stored)) < streamBatch {
				break
			}
		}

		select {
		case <-waiter.C():
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return nil
			}
		case <-closed:
			return nil
		case <-req.Context().Done():
			return nil
		}
	}
}
