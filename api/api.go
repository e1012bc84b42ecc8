// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api exposes the pool ledger over REST: pool and account views,
// operation submission, event queries and a live event stream. The caller
// address of a submitted operation is taken from the request body; the
// deployment boundary in front of the node authenticates it.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/demeterfi/demeter/api/restutil"
	"github.com/demeterfi/demeter/log"
	"github.com/demeterfi/demeter/metrics"
	"github.com/demeterfi/demeter/node"
)

var logger = log.WithContext("pkg", "api")

// Options configures the handler stack.
type Options struct {
	AllowedOrigins  string
	EventsLimit     uint64 // max rows an event query may return
	EnableReqLogger bool
	EnableMetrics   bool // mounts /metrics and records per-request meters
}

// API is the REST surface over one node.
type API struct {
	node        *node.Node
	eventsLimit uint64
	upgrader    websocket.Upgrader
}

// New returns the api handler.
func New(nd *node.Node, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	eventsLimit := opts.EventsLimit
	if eventsLimit == 0 {
		eventsLimit = 1000
	}

	a := &API{
		node:        nd,
		eventsLimit: eventsLimit,
		upgrader: websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				if origin == "" {
					return true
				}
				origin = strings.ToLower(origin)
				for _, allowed := range origins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}

	router := mux.NewRouter()
	a.mount(router)

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}

func (a *API) mount(router *mux.Router) {
	router.Path("/pool").
		Methods(http.MethodGet).
		Name("GET /pool").
		HandlerFunc(restutil.WrapHandlerFunc(a.handlePoolStatus))
	router.Path("/pool/stake").
		Methods(http.MethodPost).
		Name("POST /pool/stake").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleStake))
	router.Path("/pool/withdraw").
		Methods(http.MethodPost).
		Name("POST /pool/withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleWithdraw))
	router.Path("/pool/unstake").
		Methods(http.MethodPost).
		Name("POST /pool/unstake").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleUnstake))
	router.Path("/pool/claim").
		Methods(http.MethodPost).
		Name("POST /pool/claim").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleClaim))
	router.Path("/pool/fund").
		Methods(http.MethodPost).
		Name("POST /pool/fund").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleFund))
	router.Path("/pool/burn-rate").
		Methods(http.MethodPost).
		Name("POST /pool/burn-rate").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleSetBurnRate))
	router.Path("/pool/distributor").
		Methods(http.MethodPost).
		Name("POST /pool/distributor").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleSetDistributor))
	router.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAccount))
	router.Path("/events").
		Methods(http.MethodPost).
		Name("POST /events").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleFilterEvents))
	router.Path("/subscriptions/events").
		Methods(http.MethodGet).
		Name("WS /subscriptions/events").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleSubscribeEvents))
}
