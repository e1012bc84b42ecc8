// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demeterfi/demeter/builtin"
	"github.com/demeterfi/demeter/demeter"
	"github.com/demeterfi/demeter/eventdb"
	"github.com/demeterfi/demeter/events"
	"github.com/demeterfi/demeter/lvldb"
	"github.com/demeterfi/demeter/metrics"
	"github.com/demeterfi/demeter/node"
	"github.com/demeterfi/demeter/state"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func newMeteredServer(t *testing.T) *httptest.Server {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	stater := state.NewStater(store)
	st := stater.NewState()
	owner := demeter.BytesToAddress([]byte("metrics-owner"))
	require.NoError(t, builtin.Roles.WithState(st).SetOwner(owner))
	require.NoError(t, builtin.Roles.WithState(st).SetDistributor(owner))
	require.NoError(t, builtin.Pool.WithState(st, &events.Collector{}).Init(604800, 0))
	require.NoError(t, st.Stage().Commit())

	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	nd := node.New(stater, db, node.NewManualClock(1700000000))
	srv := httptest.NewServer(New(nd, Options{AllowedOrigins: "*", EnableMetrics: true}))
	t.Cleanup(srv.Close)
	return srv
}

func httpGetBody(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestMetricsMiddleware(t *testing.T) {
	srv := newMeteredServer(t)

	_, code := httpGetBody(t, srv.URL+"/pool")
	assert.Equal(t, 200, code)

	res, err := http.Post(srv.URL+"/pool/stake", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, 400, res.StatusCode)

	body, code := httpGetBody(t, srv.URL+"/metrics")
	require.Equal(t, 200, code)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	m := families["demeter_metrics_api_request_count"].GetMetric()
	require.Equal(t, 2, len(m), "should be 2 metric entries")

	labels := m[0].GetLabel()
	require.Equal(t, 3, len(labels))
	assert.Equal(t, "code", labels[0].GetName())
	assert.Equal(t, "200", labels[0].GetValue())
	assert.Equal(t, "method", labels[1].GetName())
	assert.Equal(t, "GET", labels[1].GetValue())
	assert.Equal(t, "name", labels[2].GetName())
	assert.Equal(t, "GET /pool", labels[2].GetValue())

	labels = m[1].GetLabel()
	require.Equal(t, 3, len(labels))
	assert.Equal(t, "400", labels[0].GetValue())
	assert.Equal(t, "POST", labels[1].GetValue())
	assert.Equal(t, "POST /pool/stake", labels[2].GetValue())
}
