// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/api/restutil"
	"github.com/demeterfi/demeter/eventdb"
)

func defaultEventOptions(limit uint64) *eventdb.Options {
	return &eventdb.Options{Offset: 0, Limit: limit}
}

// handleFilterEvents queries the recorded event history with the filter
// given in the request body.
func (a *API) handleFilterEvents(w http.ResponseWriter, req *http.Request) error {
	if !a.node.HasEventHistory() {
		return restutil.Forbidden(errors.New("event history disabled"))
	}
	var filter EventFilter
	if err := restutil.ParseJSON(req.Body, &filter); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > a.eventsLimit {
		return restutil.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", a.eventsLimit))
	}
	if filter.Range != nil && filter.Range.To != 0 && filter.Range.From > filter.Range.To {
		return restutil.BadRequest(errors.New("range.to must be greater than or equal to range.from"))
	}

	converted, err := convertEventFilter(&filter)
	if err != nil {
		return restutil.BadRequest(err)
	}
	if converted.Options == nil {
		converted.Options = defaultEventOptions(a.eventsLimit)
	}

	stored, err := a.node.FilterEvents(req.Context(), converted)
	if err != nil {
		return err
	}
	out := make([]*Event, len(stored))
	for i, ev := range stored {
		out[i] = convertStoredEvent(ev)
	}
	return restutil.WriteJSON(w, out)
}
