// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package poolclient provides an HTTP client for the pool ledger API. It
// offers methods to read pool and account state, submit operations and
// query or stream events.
package poolclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/demeterfi/demeter/api"
	"github.com/demeterfi/demeter/demeter"
)

var (
	// ErrNotFound is returned when the resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnexpectedStatus is returned on any non-200 response; the
	// wrapped message carries the status and the response body.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// Client talks to one pool ledger node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

// NewWithHTTP creates a new Client with a caller-owned http.Client.
func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		c:   c,
	}
}

// URL returns the node URL the client points at.
func (c *Client) URL() string {
	return c.url
}

func (c *Client) httpGET(path string, result any) error {
	res, err := c.c.Get(c.url + path)
	if err != nil {
		return errors.Wrap(err, "http get")
	}
	defer res.Body.Close()
	return decodeResponse(res, result)
}

func (c *Client) httpPOST(path string, body, result any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}
	res, err := c.c.Post(c.url+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "http post")
	}
	defer res.Body.Close()
	return decodeResponse(res, result)
}

func decodeResponse(res *http.Response, result any) error {
	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return errors.WithMessage(ErrUnexpectedStatus,
			fmt.Sprintf("%d: %s", res.StatusCode, strings.TrimSpace(string(msg))))
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// Status retrieves the pool snapshot.
func (c *Client) Status() (*api.Status, error) {
	var status api.Status
	if err := c.httpGET("/pool", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Account retrieves the position and token balances of addr.
func (c *Client) Account(addr demeter.Address) (*api.Account, error) {
	var acc api.Account
	if err := c.httpGET("/accounts/"+addr.String(), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Stake submits a stake of amount by caller.
func (c *Client) Stake(caller demeter.Address, amount *big.Int) (*api.Receipt, error) {
	var receipt api.Receipt
	err := c.httpPOST("/pool/stake", &api.StakeRequest{
		Caller: caller,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Withdraw submits a withdrawal of amount by caller.
func (c *Client) Withdraw(caller demeter.Address, amount *big.Int) (*api.Receipt, error) {
	var receipt api.Receipt
	err := c.httpPOST("/pool/withdraw", &api.WithdrawRequest{
		Caller: caller,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Unstake withdraws caller's whole position and claims the reward.
func (c *Client) Unstake(caller demeter.Address) (*api.Receipt, error) {
	var receipt api.Receipt
	if err := c.httpPOST("/pool/unstake", &api.CallerRequest{Caller: caller}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Claim pays out caller's accrued reward.
func (c *Client) Claim(caller demeter.Address) (*api.Receipt, error) {
	var receipt api.Receipt
	if err := c.httpPOST("/pool/claim", &api.CallerRequest{Caller: caller}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Fund schedules reward units for distribution; caller must be the
// distributor.
func (c *Client) Fund(caller demeter.Address, reward *big.Int) (*api.Receipt, error) {
	var receipt api.Receipt
	err := c.httpPOST("/pool/fund", &api.FundRequest{
		Caller: caller,
		Reward: (*math.HexOrDecimal256)(reward),
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// SetBurnRate updates the withdrawal burn percentage; caller must be the
// owner.
func (c *Client) SetBurnRate(caller demeter.Address, rate uint64) (*api.Receipt, error) {
	var receipt api.Receipt
	err := c.httpPOST("/pool/burn-rate", &api.BurnRateRequest{
		Caller: caller,
		Rate:   rate,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// SetDistributor hands the funding role to distributor; caller must be
// the owner.
func (c *Client) SetDistributor(caller, distributor demeter.Address) (*api.Receipt, error) {
	var receipt api.Receipt
	err := c.httpPOST("/pool/distributor", &api.DistributorRequest{
		Caller:      caller,
		Distributor: distributor,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// FilterEvents queries the recorded event history.
func (c *Client) FilterEvents(filter *api.EventFilter) ([]*api.Event, error) {
	if filter == nil {
		filter = &api.EventFilter{}
	}
	var events []*api.Event
	if err := c.httpPOST("/events", filter, &events); err != nil {
		return nil, err
	}
	return events, nil
}
