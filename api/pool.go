// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"math/big"
	"net/http"

	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/api/restutil"
	"github.com/demeterfi/demeter/pool"
	"github.com/demeterfi/demeter/token"
)

// convertLedgerError maps ledger rejections to client errors. Anything
// else is a node fault and surfaces as 500.
func convertLedgerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pool.ErrUnauthorized):
		return restutil.Forbidden(err)
	case pool.IsRuleError(err), errors.Is(err, token.ErrInsufficientFunds):
		return restutil.BadRequest(err)
	default:
		return err
	}
}

func (a *API) handlePoolStatus(w http.ResponseWriter, _ *http.Request) error {
	status, err := a.node.Status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStatus(status))
}

func (a *API) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.BadRequest(errors.New("amount: missing"))
	}
	receipt, err := a.node.Stake(body.Caller, (*big.Int)(body.Amount))
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}

func (a *API) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body WithdrawRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.BadRequest(errors.New("amount: missing"))
	}
	receipt, err := a.node.Withdraw(body.Caller, (*big.Int)(body.Amount))
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}

func (a *API) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := a.node.Unstake(body.Caller)
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}

func (a *API) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := a.node.Claim(body.Caller)
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}

func (a *API) handleFund(w http.ResponseWriter, req *http.Request) error {
	var body FundRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Reward == nil {
		return restutil.BadRequest(errors.New("reward: missing"))
	}
	receipt, err := a.node.Fund(body.Caller, (*big.Int)(body.Reward))
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}

func (a *API) handleSetBurnRate(w http.ResponseWriter, req *http.Request) error {
	var body BurnRateRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := a.node.SetBurnRate(body.Caller, body.Rate)
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}

func (a *API) handleSetDistributor(w http.ResponseWriter, req *http.Request) error {
	var body DistributorRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := a.node.SetDistributor(body.Caller, body.Distributor)
	if err != nil {
		return convertLedgerError(err)
	}
	return restutil.WriteJSON(w, convertReceipt(receipt))
}
