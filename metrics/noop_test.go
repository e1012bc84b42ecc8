// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// Meters created before initialization must absorb measurements without
// side effects, and the handler must stay nil.
func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	require.Nil(t, HTTPHandler())

	count1 := Counter("count1")
	Counter("count2")

	count1.Add(1)
	for range rand.N(100) + 1 {
		Counter("count2").Add(1)
	}

	hist := Histogram("hist1", nil)
	histVec := HistogramVec("hist2", []string{"op"}, nil)
	for i := range rand.N(100) + 1 {
		hist.Observe(int64(i))
		histVec.ObserveWithLabels(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
	}

	countVec := CounterVec("countVec1", []string{"op"})
	gaugeVec := GaugeVec("gaugeVec1", []string{"op"})
	for i := range rand.N(100) + 1 {
		countVec.AddWithLabel(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
		gaugeVec.AddWithLabel(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
	}
}
