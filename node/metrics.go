// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/demeterfi/demeter/metrics"
)

var (
	metricOpCount      = metrics.LazyLoadCounterVec("operation_count", []string{"op", "status"})
	metricOpDuration   = metrics.LazyLoadHistogramVec("operation_duration_ms", []string{"op"}, metrics.Bucket10s)
	metricTotalStaked  = metrics.LazyLoadGauge("total_staked_units_gauge")
	metricPeriodFinish = metrics.LazyLoadGauge("period_finish_gauge")
)

func opLabels(kind, status string) map[string]string {
	return map[string]string{"op": kind, "status": status}
}
