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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lang.yottadb.com/go/gtm/gtmerr"
)

// ---- Error type for per-operation failures

// Error is the error returned by every per-operation failure. It carries the numeric error code and
// the text of $ZSTATUS (or of a wrapper-generated message formatted the same way).
//
// Lifecycle failures are not reported with this type: see [FatalError].
type Error struct {
	Code     int    // GT.M error number from $ZSTATUS, or a gtmerr code for errors detected by the wrapper
	Mnemonic string // Error mnemonic, e.g. GVUNDEF or LOCKTIMEOUT
	Location string // M location where the error was raised (e.g. get+2^gtmgo), if known
	Message  string // Diagnostic text, generally from $ZSTATUS
	chain    error  // Lower-level error wrapped by this one, if any
}

// Error returns the diagnostic text.
func (err *Error) Error() string {
	return "GTM: " + err.Message
}

// Unwrap allows errors.Is and errors.As to find errors wrapped by this one.
func (err *Error) Unwrap() error {
	return err.chain
}

// Is reports whether target is an *Error with the same Code.
// This lets errors.Is(err, &gtm.Error{Code: gtmerr.LockTimeout}) match regardless of message text.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == err.Code
}

// newError returns a wrapper error with the given code and message text, optionally wrapping another error.
func newError(code int, message string, wrapped ...error) *Error {
	mnemonic := gtmerr.Mnemonic(code)
	err := &Error{Code: code, Mnemonic: mnemonic, Message: fmt.Sprintf("%%GTMGO-E-%s, %s", mnemonic, message)}
	if len(wrapped) > 0 {
		err.chain = wrapped[0]
	}
	return err
}

// errorf is like newError but formats the message using fmt.Sprintf. A %w verb wraps its argument.
func errorf(code int, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	return newError(code, wrapped.Error(), errors.Unwrap(wrapped))
}

// parseStatus converts text in $ZSTATUS layout into an *Error.
// $ZSTATUS looks like: 150373850,get+2^gtmgo,%GTM-E-LVUNDEF, Undefined local variable: x
func parseStatus(text string) *Error {
	text = strings.TrimRight(text, "\x00\r\n ")
	err := &Error{Code: gtmerr.StatusInvalid, Message: text}
	parts := strings.SplitN(text, ",", 3)
	if len(parts) < 3 {
		return err
	}
	code, convErr := strconv.Atoi(strings.TrimSpace(parts[0]))
	if convErr != nil {
		return err
	}
	err.Code = code
	err.Location = parts[1]
	err.Message = strings.TrimLeft(parts[2], " ")
	// Message begins %FAC-S-MNEMONIC
	if prefix, _, ok := strings.Cut(err.Message, ","); ok && strings.HasPrefix(prefix, "%") {
		fields := strings.Split(prefix[1:], "-")
		if len(fields) == 3 {
			err.Mnemonic = fields[2]
			if fields[0] == "GTMGO" {
				if wrapperCode, found := gtmerr.Lookup(err.Mnemonic); found {
					err.Code = wrapperCode
				}
			}
		}
	}
	return err
}

// ErrorCode returns the Code of err if it is (or wraps) an *Error, otherwise -1.
func ErrorCode(err error) int {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return -1
}

// ErrorIs reports whether err is or wraps an *Error with the given code.
func ErrorIs(err error, code int) bool {
	return errors.Is(err, &Error{Code: code})
}

// IsUndefined reports whether err is the engine's error for reading a variable that has no value
// (GVUNDEF for globals, LVUNDEF or UNDEF for locals). This is the not-found failure of Get.
func IsUndefined(err error) bool {
	var gerr *Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Mnemonic {
	case "GVUNDEF", "LVUNDEF", "UNDEF":
		return true
	}
	return false
}

// ---- Unrecoverable lifecycle failures

// FatalError describes a failure of gtm_init() or gtm_exit(). After such a failure the engine is in an
// indeterminate state and the process cannot continue to use it. FatalError is passed to [FatalHandler]
// rather than returned to callers in the normal way, and is never an *Error.
type FatalError struct {
	Op      string // gtm_init or gtm_exit
	Status  int    // Non-zero status returned by Op
	Message string // $ZSTATUS text retrieved after the failure
}

func (err *FatalError) Error() string {
	return fmt.Sprintf("GTM: fatal %s failure (status %d): %s", err.Op, err.Status, err.Message)
}
