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
	"strings"
	"testing"

	assert "github.com/stretchr/testify/require"

	"lang.yottadb.com/go/gtm/gtmerr"
)

// newBuffers returns a value buffer and a diagnostic buffer freed at the end of the test.
func newBuffers(t *testing.T, size uint32) (*BufferT, *BufferT) {
	var value, errstr BufferT
	value.Alloc(size)
	errstr.Alloc(MaxMessageLength)
	t.Cleanup(func() {
		value.Free()
		errstr.Free()
	})
	return &value, &errstr
}

func TestSetGetST(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 64)

	assert.Nil(t, value.SetValStr("hello"))
	assert.Nil(t, s.SetST(testGlobal+`("st")`, value, errstr))
	assert.Equal(t, "", errstr.str())

	assert.Nil(t, value.SetValStr("overwritten"))
	assert.Nil(t, s.GetST(testGlobal+`("st")`, value, errstr))
	val, err := value.ValStr()
	assert.Nil(t, err)
	assert.Equal(t, "hello", val)
	assert.Equal(t, 0, s.Status())
	// The byte after the value is always a NUL terminator
	assert.Equal(t, byte(0), value.bytes()[5])
}

func TestGetSTUndefinedLeavesDiagnostic(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 64)

	err := s.GetST(testGlobal+`("missing")`, value, errstr)
	assert.NotNil(t, err)
	assert.True(t, IsUndefined(err), err.Error())
	// The raw convention: the diagnostic buffer is non-empty after a failure
	diag := errstr.str()
	assert.NotEqual(t, "", diag)
	assert.Contains(t, diag, "UNDEF")
	assert.Equal(t, "", value.str())

	// The next successful call clears the stale diagnostic
	assert.Nil(t, value.SetValStr("1"))
	assert.Nil(t, s.SetST(testGlobal+`("missing")`, value, errstr))
	assert.Equal(t, "", errstr.str())
}

func TestFailedReadsEmptyStaleBuffer(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 16)
	reads := map[string]func() error{
		"get":   func() error { return s.GetST(testGlobal+`("missing")`, value, errstr) },
		"order": func() error { return s.OrderST("^bad(", value, errstr) },
		"query": func() error { return s.QueryST("^bad(", value, errstr) },
	}
	for op, read := range reads {
		assert.Nil(t, value.SetValStr("stale value"))
		err := read()
		assert.NotNil(t, err, op)
		assert.False(t, ErrorIs(err, gtmerr.ValueTruncated), "%s: %v", op, err)
		n, err := value.LenUsed()
		assert.Nil(t, err)
		assert.Equal(t, uint32(0), n, op)
		assert.Equal(t, byte(0), value.bytes()[0], op)
	}
}

func TestKillST(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 64)
	assert.Nil(t, value.SetValStr("v"))
	assert.Nil(t, s.SetST(testGlobal+"(1,2)", value, errstr))
	assert.Nil(t, s.KillST(testGlobal+"(1)", errstr))
	err := s.GetST(testGlobal+"(1,2)", value, errstr)
	assert.True(t, IsUndefined(err))
}

func TestOrderQueryST(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 64)
	index, _ := newBuffers(t, 64)
	for _, sub := range []string{`"b"`, `"a"`, "2"} {
		assert.Nil(t, value.SetValStr(sub))
		assert.Nil(t, s.SetST(testGlobal+"("+sub+")", value, errstr))
	}
	// Numbers collate before strings
	assert.Nil(t, s.OrderST(testGlobal+`("")`, index, errstr))
	assert.Equal(t, "2", index.str())
	assert.Nil(t, s.OrderST(testGlobal+`("a")`, index, errstr))
	assert.Equal(t, "b", index.str())
	assert.Nil(t, s.OrderST(testGlobal+`("b")`, index, errstr))
	assert.Equal(t, "", index.str())

	assert.Nil(t, s.QueryST(testGlobal, index, errstr))
	assert.Equal(t, testGlobal+"(2)", index.str())
}

func TestExecuteSTError(t *testing.T) {
	s := SetupTest(t)
	_, errstr := newBuffers(t, 1)
	err := s.ExecuteST("set x=1/0", errstr)
	assert.NotNil(t, err)
	assert.Contains(t, errstr.str(), "DIVZERO")
	assert.Equal(t, "DIVZERO", err.(*Error).Mnemonic)

	// The session remains usable
	assert.Nil(t, s.ExecuteST("set x=2", errstr))
	assert.Equal(t, "", errstr.str())
	val, err := s.Get("x")
	assert.Nil(t, err)
	assert.Equal(t, "2", val)
}

func TestSTUnallocatedBuffers(t *testing.T) {
	s := SetupTest(t)
	var value BufferT
	_, errstr := newBuffers(t, 1)

	err := s.GetST("x", &value, errstr)
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
	assert.Contains(t, errstr.str(), "STRUCTNOTALLOCD")

	err = s.KillST("x", nil)
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
	err = s.KillST("x", &value)
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
}

func TestSTNameTooLong(t *testing.T) {
	s := SetupTest(t)
	_, errstr := newBuffers(t, 1)
	name := "^" + strings.Repeat("x", testValueLength)
	err := s.KillST(name, errstr)
	assert.True(t, ErrorIs(err, gtmerr.NameTooLong))
	// The wrapper's own diagnostic is formatted like $ZSTATUS and decodes back to the same code
	assert.Equal(t, gtmerr.NameTooLong, ErrorCode(errorFromBuffer(errstr)))
}

func TestGetSTTruncation(t *testing.T) {
	s := SetupTest(t)
	value, errstr := newBuffers(t, 8)
	assert.Nil(t, s.Set(testGlobal, "0123456789"))

	err := s.GetST(testGlobal, value, errstr)
	assert.True(t, ErrorIs(err, gtmerr.ValueTruncated), err)
	assert.Contains(t, errstr.str(), "VALUETRUNCATED")
	assert.Equal(t, "01234567", value.str())
	assert.Equal(t, byte(0), value.bytes()[8])

	s.cfg.Truncation = TruncateSilent
	assert.Nil(t, s.GetST(testGlobal, value, errstr))
	assert.Equal(t, "01234567", value.str())
	assert.Equal(t, "", errstr.str())

	// A value of exactly the capacity is not truncated
	assert.Nil(t, s.Set(testGlobal, "abcdefgh"))
	s.cfg.Truncation = TruncateError
	assert.Nil(t, s.GetST(testGlobal, value, errstr))
	assert.Equal(t, "abcdefgh", value.str())
}

func TestDiagnosticTruncated(t *testing.T) {
	s := SetupTest(t)
	var errstr BufferT
	errstr.Alloc(16)
	defer errstr.Free()
	err := s.ExecuteST("set x=1/0", &errstr)
	assert.NotNil(t, err)
	assert.Equal(t, 16, errstr.used())
}
