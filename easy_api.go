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
	"iter"
	"time"

	"lang.yottadb.com/go/gtm/gtmerr"
	"lang.yottadb.com/go/gtm/mref"
)

////////////////////////////////////////////////////////////////////////////////////////////////////
//
// Easy API methods: Go strings in and out, using the session's own buffers.
//
// Each method delegates to its Simple API counterpart and returns an *Error if that left a diagnostic.
// Results are copied into Go strings so they remain valid after the next call.
//
////////////////////////////////////////////////////////////////////////////////////////////////////

// Get returns the value of the local or global variable name.
// If the variable has no value the error satisfies [IsUndefined].
//
// Name may also be an intrinsic special variable such as $ZVERSION.
func (s *Session) Get(name string) (string, error) {
	printEntry("Get()")
	if err := s.GetST(name, &s.value, &s.errstr); err != nil {
		return "", err
	}
	return s.value.str(), nil
}

// Set sets the local or global variable name to value. Under [TruncateError] a value longer than
// Config.MaxValueLength is rejected with gtmerr.ValueTooLong; under [TruncateSilent] it is cut to that length.
func (s *Session) Set(name, value string) error {
	printEntry("Set()")
	if err := s.check(); err != nil {
		return err
	}
	if len(value) > int(s.value.lenAlloc) {
		if s.cfg.Truncation == TruncateError {
			return errorf(gtmerr.ValueTooLong, "value of length %d exceeds maximum %d", len(value), s.value.lenAlloc)
		}
		value = value[:s.value.lenAlloc]
	}
	if err := s.value.SetValStr(value); err != nil {
		return err
	}
	return s.SetST(name, &s.value, &s.errstr)
}

// Kill kills name and all its descendants.
func (s *Session) Kill(name string) error {
	printEntry("Kill()")
	return s.KillST(name, &s.errstr)
}

// Order returns the next subscript after the last subscript of name at the same level, or "" at the end.
// Use Order(`^x("")`) to fetch the first subscript of ^x.
func (s *Session) Order(name string) (string, error) {
	printEntry("Order()")
	if err := s.OrderST(name, &s.index, &s.errstr); err != nil {
		return "", err
	}
	return s.index.str(), nil
}

// Query returns the next variable reference after name that has a value, or "" at the end.
func (s *Session) Query(name string) (string, error) {
	printEntry("Query()")
	if err := s.QueryST(name, &s.index, &s.errstr); err != nil {
		return "", err
	}
	return s.index.str(), nil
}

// Lock incrementally locks name, blocking until the engine grants it.
func (s *Session) Lock(name string) error {
	printEntry("Lock()")
	return s.LockST(name, -1, &s.errstr)
}

// LockTimeout incrementally locks name, failing with code gtmerr.LockTimeout if the lock is not granted
// within timeout.
func (s *Session) LockTimeout(name string, timeout time.Duration) error {
	printEntry("LockTimeout()")
	if timeout < 0 {
		timeout = 0
	}
	return s.LockST(name, timeout, &s.errstr)
}

// Unlock decrements the lock count of name.
func (s *Session) Unlock(name string) error {
	printEntry("Unlock()")
	return s.UnlockST(name, &s.errstr)
}

// Execute runs the M code fragment code, e.g. Execute("set x=1").
func (s *Session) Execute(code string) error {
	printEntry("Execute()")
	return s.ExecuteST(code, &s.errstr)
}

// EngineRelease returns $ZVERSION of the running engine.
func (s *Session) EngineRelease() (string, error) {
	return s.Get("$ZVERSION")
}

// ---- Traversal helpers

// Subscripts iterates the subscripts immediately below parent in collation order, using $ORDER.
// Each step yields the subscript and a nil error; a failure is yielded once with an empty subscript and
// ends the iteration.
func (s *Session) Subscripts(parent string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sub := ""
		for {
			next, err := s.Order(mref.Child(parent, sub))
			if err != nil {
				yield("", err)
				return
			}
			if next == "" {
				return
			}
			if !yield(next, nil) {
				return
			}
			sub = next
		}
	}
}

// References iterates every variable reference after start that has a value, in $QUERY order.
// For a global the traversal ends after the last node of that global; for a local it continues
// into later local variables, as $QUERY does. Use [Session.Descendants] to stay below one node.
func (s *Session) References(start string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ref := start
		for {
			next, err := s.Query(ref)
			if err != nil {
				yield("", err)
				return
			}
			if next == "" {
				return
			}
			if !yield(next, nil) {
				return
			}
			ref = next
		}
	}
}

// Descendants iterates the references below root that have a value, stopping at the first reference
// outside root.
func (s *Session) Descendants(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for ref, err := range s.References(root) {
			if err != nil {
				yield("", err)
				return
			}
			if !within(root, ref) {
				return
			}
			if !yield(ref, nil) {
				return
			}
		}
	}
}

// within reports whether ref is root or one of its descendants.
func within(root, ref string) bool {
	rname, rsubs, err := mref.Split(root)
	if err != nil {
		return false
	}
	name, subs, err := mref.Split(ref)
	if err != nil || name != rname || len(subs) < len(rsubs) {
		return false
	}
	for i := range rsubs {
		if subs[i] != rsubs[i] {
			return false
		}
	}
	return true
}
