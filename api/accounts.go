// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/api/restutil"
	"github.com/demeterfi/demeter/demeter"
)

func (a *API) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := demeter.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	acc, err := a.node.Account(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertAccount(acc))
}
