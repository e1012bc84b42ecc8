// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poolclient

import (
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/api"
)

// EventSubscription is a live event stream. Read one event at a time
// with Next, and Close when done.
type EventSubscription struct {
	conn *websocket.Conn
}

// SubscribeEvents opens a websocket stream of events starting right
// after operation sequence pos. Pos zero backfills the whole history.
func (c *Client) SubscribeEvents(pos uint64) (*EventSubscription, error) {
	wsURL := strings.Replace(strings.Replace(c.url, "https://", "wss://", 1), "http://", "ws://", 1)
	wsURL += "/subscriptions/events?pos=" + strconv.FormatUint(pos, 10)

	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if res != nil {
			res.Body.Close()
		}
		return nil, errors.Wrap(err, "dial subscription")
	}
	res.Body.Close()
	return &EventSubscription{conn: conn}, nil
}

// Next blocks until the next event arrives.
func (s *EventSubscription) Next() (*api.Event, error) {
	var ev api.Event
	if err := s.conn.ReadJSON(&ev); err != nil {
		return nil, errors.Wrap(err, "read event")
	}
	return &ev, nil
}

// Close tears the stream down.
func (s *EventSubscription) Close() error {
	return s.conn.Close()
}
