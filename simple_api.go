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
	"fmt"
	"strings"
	"time"

	"lang.yottadb.com/go/gtm/gtmerr"
)

////////////////////////////////////////////////////////////////////////////////////////////////////
//
// Simple API methods: the caller supplies the buffers.
//
// Each method clears errstr, makes one call-in and leaves the diagnostic text of any failure in errstr,
// so that a non-empty errstr after the call denotes failure. The same failure is also returned as an
// *Error. The session remains usable after any such failure.
//
////////////////////////////////////////////////////////////////////////////////////////////////////

// ReservedPrefix starts the names of the M routine's own local variables. Operations other than Execute
// reject local names with this prefix.
const ReservedPrefix = "%gtmgo"

// ready checks that the session may be used by the caller and that errstr and the other buffers are
// allocated. It clears errstr.
func (s *Session) ready(op string, errstr *BufferT, bufs ...*BufferT) error {
	if errstr == nil || errstr.cbuft == nil {
		if err := s.check(); err != nil {
			return err
		}
		return notAllocd()
	}
	errstr.clear()
	if err := s.check(); err != nil {
		return s.fail(op, errstr, err)
	}
	for _, buf := range bufs {
		if buf == nil || buf.cbuft == nil {
			return s.fail(op, errstr, notAllocd())
		}
	}
	return nil
}

// call is the single path into the engine for every operation. invoke makes the actual call-in once
// the name buffer holds name; it returns the gtm_cip() status. For operations that yield a value, value is
// NUL terminated afterwards and the truncation policy applied to it; otherwise value is nil. The caller
// has already called ready().
func (s *Session) call(op, name string, errstr, value *BufferT, invoke func() int) error {
	if len(name) > s.name.cap {
		return s.fail(op, errstr, errorf(gtmerr.NameTooLong, "%s: name of length %d exceeds maximum %d", op, len(name), s.name.cap))
	}
	if op != opExecute && strings.HasPrefix(name, ReservedPrefix) {
		return s.fail(op, errstr, errorf(gtmerr.NameReserved, "%s: local names starting with %s are reserved: %s", op, ReservedPrefix, name))
	}
	s.name.set(name)
	start := time.Now()
	errstr.prepareOutput()
	status := invoke()
	errstr.finishOutput() // diagnostics longer than MaxMessageLength are simply cut short
	s.status = status
	if status != 0 && errstr.used() == 0 {
		// The engine failed outside the M error trap (for example a missing call-in table entry):
		// report $ZSTATUS as the diagnostic for this operation only.
		msg := s.zstatus()
		if msg == "" {
			msg = fmt.Sprintf("%d,%s,%%GTMGO-E-CALLIN, gtm_cip() returned status %d", status, op, status)
		}
		errstr.SetValStr(msg[:min(len(msg), int(errstr.lenAlloc))])
	}
	err := errorFromBuffer(errstr)
	if value != nil {
		truncated := value.finishOutput()
		if err == nil && truncated && s.cfg.Truncation == TruncateError {
			err = s.record(op, errstr, errorf(gtmerr.ValueTruncated, "%s: value longer than buffer capacity %d", op, value.lenAlloc))
		}
	}
	observe(op, start, err != nil)
	if err != nil {
		printEntry(op + " failed: " + err.Error())
	}
	return err
}

// record writes err into errstr formatted like $ZSTATUS and returns it.
func (s *Session) record(op string, errstr *BufferT, err error) error {
	msg := err.Error()
	if gerr, ok := err.(*Error); ok {
		msg = fmt.Sprintf("%d,%s,%s", gerr.Code, op, gerr.Message)
	}
	errstr.SetValStr(msg[:min(len(msg), int(errstr.lenAlloc))])
	return err
}

// fail records a failure detected by the wrapper before any call-in is made, and counts it.
func (s *Session) fail(op string, errstr *BufferT, err error) error {
	observe(op, time.Now(), true)
	return s.record(op, errstr, err)
}

// errorFromBuffer is the one adapter from the diagnostic-buffer convention to Go errors: it returns nil if
// errstr is empty and otherwise the *Error described by its $ZSTATUS-format text.
func errorFromBuffer(errstr *BufferT) error {
	if errstr.used() == 0 {
		return nil
	}
	return parseStatus(errstr.str())
}

// GetST fetches the value of the local or global variable name into value.
// If the variable has no value the error satisfies [IsUndefined].
func (s *Session) GetST(name string, value, errstr *BufferT) error {
	printEntry("GetST()")
	if err := s.ready(opGet, errstr, value); err != nil {
		return err
	}
	value.clear()
	return s.call(opGet, name, errstr, value, func() int {
		value.prepareOutput()
		return s.cipValue(opGet, value, errstr)
	})
}

// SetST sets the local or global variable name to the contents of value.
func (s *Session) SetST(name string, value, errstr *BufferT) error {
	printEntry("SetST()")
	if err := s.ready(opSet, errstr, value); err != nil {
		return err
	}
	return s.call(opSet, name, errstr, nil, func() int {
		return s.cipValue(opSet, value, errstr)
	})
}

// KillST kills name and all its descendants.
func (s *Session) KillST(name string, errstr *BufferT) error {
	printEntry("KillST()")
	if err := s.ready(opKill, errstr); err != nil {
		return err
	}
	return s.call(opKill, name, errstr, nil, func() int {
		return s.cipName(opKill, errstr)
	})
}

// OrderST stores in index the next subscript after the last subscript of name at the same level,
// as $ORDER does. An empty index signals the end of the subscripts.
func (s *Session) OrderST(name string, index, errstr *BufferT) error {
	printEntry("OrderST()")
	if err := s.ready(opOrder, errstr, index); err != nil {
		return err
	}
	index.clear()
	return s.call(opOrder, name, errstr, index, func() int {
		index.prepareOutput()
		return s.cipValue(opOrder, index, errstr)
	})
}

// QueryST stores in index the next variable reference after name that has a value, as $QUERY does.
// An empty index signals the end of the traversal.
func (s *Session) QueryST(name string, index, errstr *BufferT) error {
	printEntry("QueryST()")
	if err := s.ready(opQuery, errstr, index); err != nil {
		return err
	}
	index.clear()
	return s.call(opQuery, name, errstr, index, func() int {
		index.prepareOutput()
		return s.cipValue(opQuery, index, errstr)
	})
}

// LockST incrementally locks name, waiting until the lock is granted if timeout is negative. Otherwise, if the
// lock is not granted within timeout, the error has code gtmerr.LockTimeout. The engine applies the timeout
// with millisecond resolution.
func (s *Session) LockST(name string, timeout time.Duration, errstr *BufferT) error {
	printEntry("LockST()")
	if err := s.ready(opLock, errstr); err != nil {
		return err
	}
	ms := int64(-1)
	if timeout >= 0 {
		ms = timeout.Milliseconds()
	}
	return s.call(opLock, name, errstr, nil, func() int {
		return s.cipLock(ms, errstr)
	})
}

// UnlockST decrements the lock count of name, releasing the lock when the count reaches zero.
func (s *Session) UnlockST(name string, errstr *BufferT) error {
	printEntry("UnlockST()")
	if err := s.ready(opUnlock, errstr); err != nil {
		return err
	}
	return s.call(opUnlock, name, errstr, nil, func() int {
		return s.cipName(opUnlock, errstr)
	})
}

// ExecuteST runs code as an M XECUTE argument. Runtime errors raised by code are reported like any other
// per-operation failure.
func (s *Session) ExecuteST(code string, errstr *BufferT) error {
	printEntry("ExecuteST()")
	if err := s.ready(opExecute, errstr); err != nil {
		return err
	}
	return s.call(opExecute, code, errstr, nil, func() int {
		return s.cipName(opExecute, errstr)
	})
}
