// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/demeterfi/demeter/log"
)

// requestLoggerHandler logs every request with its body. Bodies are small
// operation submissions, so buffering them whole is fine here.
func requestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return // don't pass bad request to the next handler
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		start := time.Now()
		handler.ServeHTTP(w, r)

		logger.Info("API request",
			"timestamp", time.Now().Unix(),
			"URI", r.URL.String(),
			"method", r.Method,
			"body", string(bodyBytes),
			"durationMs", time.Since(start).Milliseconds(),
		)
	}
	return http.HandlerFunc(fn)
}
