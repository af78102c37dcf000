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

// Package gtmerr contains the error codes produced by the GT.M Go wrapper itself.
//
// These are positive numbers. Negative and large positive numbers come from the GT.M engine
// by way of $ZSTATUS and are passed through unchanged in gtm.Error.Code.
package gtmerr

// gtm.Error codes for use by the wrapper.
const (
	Init               = iota + 1
	Shutdown           // Error during gtm_exit()
	SessionActive      // A session is already open in this process
	SessionClosed      // The process session was closed and cannot be reopened
	SessionNotOpen     // Operation attempted on a session that is not open
	WrongGoroutine     // Session used from a goroutine other than the one that opened it
	StructNotAllocd    // BufferT used before Alloc() or after Free()
	NameTooLong        // Entity reference or M code exceeds the name buffer
	ValueTooLong       // Value exceeds the configured maximum value length
	ValueTruncated     // Engine returned a value longer than the buffer holding it
	InvalidLength      // Length passed to SetLenUsed() exceeds allocation
	LockTimeout        // Lock was not granted within the timeout
	CallIn             // gtm_cip() returned a non-zero status
	CallInTableRead    // Could not read call-in table file
	CallInTableInvalid // Call-in table is missing a required entry or has a malformed line
	CallInInstall      // Could not write call-in table or M routine to disk
	ConfigInvalid      // Invalid Config value
	StatusInvalid      // $ZSTATUS text could not be decoded
	Syslog             // Error trying to write a syslog entry
	NameReserved       // Local variable name starting with %gtmgo, which the M routine uses itself
)

// Mnemonics for the wrapper error codes, used to format messages in the same way as engine messages.
var mnemonics = map[int]string{
	Init:               "INIT",
	Shutdown:           "SHUTDOWN",
	SessionActive:      "SESSIONACTIVE",
	SessionClosed:      "SESSIONCLOSED",
	SessionNotOpen:     "SESSIONNOTOPEN",
	WrongGoroutine:     "WRONGGOROUTINE",
	StructNotAllocd:    "STRUCTNOTALLOCD",
	NameTooLong:        "NAMETOOLONG",
	ValueTooLong:       "VALUETOOLONG",
	ValueTruncated:     "VALUETRUNCATED",
	InvalidLength:      "INVSTRLEN",
	LockTimeout:        "LOCKTIMEOUT",
	CallIn:             "CALLIN",
	CallInTableRead:    "CITABREAD",
	CallInTableInvalid: "CITABINVALID",
	CallInInstall:      "CIINSTALL",
	ConfigInvalid:      "CONFIGINVALID",
	StatusInvalid:      "STATUSINVALID",
	Syslog:             "SYSLOG",
	NameReserved:       "NAMERESERVED",
}

// Mnemonic returns the short upper-case name of a wrapper error code, or "" if code is not a wrapper code.
func Mnemonic(code int) string {
	return mnemonics[code]
}

// Lookup returns the wrapper error code with the given mnemonic. The M routine gtmgo.m reports some
// conditions (e.g. LOCKTIMEOUT) using these mnemonics so that they map back to wrapper codes.
func Lookup(mnemonic string) (int, bool) {
	for code, m := range mnemonics {
		if m == mnemonic {
			return code, true
		}
	}
	return 0, false
}
