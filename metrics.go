//////////////////////////////////////////////////////////////////
//
// Copyright (c) 2026 YottaDB LLC and/or its subsidiaries.
// All rights reserved.
//
//	This source code contains the intellectual property
//	of its copyright holder(s), and is made available
//	under a license.  If you do not know the terms of
//	the license, please stop and do not read further.
//
//////////////////////////////////////////////////////////////////

package gtm

import (
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// opMetrics holds the counters for one call-in name.
type opMetrics struct {
	calls    *metrics.Counter
	errors   *metrics.Counter
	duration *metrics.Histogram
}

var callMetrics = make(map[string]*opMetrics, len(operations))

func init() {
	for _, op := range operations {
		label := `{op="` + op + `"}`
		callMetrics[op] = &opMetrics{
			calls:    metrics.GetOrCreateCounter("gtm_callin_calls_total" + label),
			errors:   metrics.GetOrCreateCounter("gtm_callin_errors_total" + label),
			duration: metrics.GetOrCreateHistogram("gtm_callin_duration_seconds" + label),
		}
	}
}

// observe records one call of op that began at start.
func observe(op string, start time.Time, failed bool) {
	m := callMetrics[op]
	if m == nil {
		return
	}
	m.calls.Inc()
	if failed {
		m.errors.Inc()
	}
	m.duration.UpdateDuration(start)
}

// WriteMetrics writes call-in counters and latency histograms to w in Prometheus text format.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
