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
	"bytes"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"

	"lang.yottadb.com/go/gtm/gtmerr"
)

func TestMetrics(t *testing.T) {
	s := SetupTest(t)
	m := callMetrics[opGet]
	calls, errs := m.calls.Get(), m.errors.Get()

	assert.Nil(t, s.Set(testGlobal, "1"))
	_, err := s.Get(testGlobal)
	assert.Nil(t, err)
	assert.Equal(t, calls+1, m.calls.Get())
	assert.Equal(t, errs, m.errors.Get())

	_, err = s.Get(testGlobal + "(1)")
	assert.NotNil(t, err)
	assert.Equal(t, calls+2, m.calls.Get())
	assert.Equal(t, errs+1, m.errors.Get())

	var out bytes.Buffer
	WriteMetrics(&out)
	assert.Contains(t, out.String(), `gtm_callin_calls_total{op="gtmget"}`)
	assert.Contains(t, out.String(), `gtm_callin_errors_total{op="gtmxecute"}`)
	assert.Contains(t, out.String(), `gtm_callin_duration_seconds_bucket{op="gtmset"`)

	// Unknown operations are ignored
	observe("nosuchop", time.Now(), true)
}

func TestMetricsTruncatedRead(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 4)
	assert.Nil(t, s.Set(testGlobal, "too long"))
	m := callMetrics[opGet]
	calls, errs := m.calls.Get(), m.errors.Get()

	err := s.GetST(testGlobal, value, errstr)
	assert.True(t, ErrorIs(err, gtmerr.ValueTruncated), err)
	assert.Equal(t, calls+1, m.calls.Get())
	assert.Equal(t, errs+1, m.errors.Get())

	s.cfg.Truncation = TruncateSilent
	assert.Nil(t, s.GetST(testGlobal, value, errstr))
	assert.Equal(t, calls+2, m.calls.Get())
	assert.Equal(t, errs+1, m.errors.Get())
}
