// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	applied := Counter("applied_count")
	Counter("rejected_count")
	opVec := CounterVec("op_count", []string{"op"})

	durations := Histogram("apply_duration_ms", nil)
	HistogramVec("apply_duration_by_op_ms", []string{"op"}, nil)

	staked := Gauge("staked_gauge")
	stakedVec := GaugeVec("staked_by_account_gauge", []string{"account"})

	applied.Add(1)
	rejected := rand.N(100) + 1
	for range rejected {
		Counter("rejected_count").Add(1)
	}

	durationTotal := 0
	for i := range rand.N(100) + 2 {
		op := i % 2
		durations.Observe(int64(i))
		HistogramVec("apply_duration_by_op_ms", []string{"op"}, nil).
			ObserveWithLabels(int64(i), map[string]string{"op": strconv.Itoa(op)})
		durationTotal += i
	}

	totalOpVec := 0
	for i := range rand.N(100) + 2 {
		op := i % 2
		opVec.AddWithLabel(int64(i), map[string]string{"op": strconv.Itoa(op)})
		totalOpVec += i
	}

	totalStaked := 0
	for i := range rand.N(100) + 2 {
		account := i % 2
		stakedVec.AddWithLabel(int64(i), map[string]string{"account": strconv.Itoa(account)})
		staked.Add(int64(i))
		totalStaked += i
	}

	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	metricFamilies, err := gatherers.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}

	require.Equal(t, float64(1), families["demeter_metrics_applied_count"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(rejected), families["demeter_metrics_rejected_count"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(durationTotal), families["demeter_metrics_apply_duration_ms"].Metric[0].GetHistogram().GetSampleSum())

	sumHistVec := families["demeter_metrics_apply_duration_by_op_ms"].Metric[0].GetHistogram().GetSampleSum() +
		families["demeter_metrics_apply_duration_by_op_ms"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(durationTotal), sumHistVec)

	sumOpVec := families["demeter_metrics_op_count"].Metric[0].GetCounter().GetValue() +
		families["demeter_metrics_op_count"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalOpVec), sumOpVec)

	require.Equal(t, float64(totalStaked), families["demeter_metrics_staked_gauge"].Metric[0].GetGauge().GetValue())
	sumGaugeVec := families["demeter_metrics_staked_by_account_gauge"].Metric[0].GetGauge().GetValue() +
		families["demeter_metrics_staked_by_account_gauge"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(totalStaked), sumGaugeVec)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics() // reset to the pre-init state

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// meters created after initialization resolve to the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
