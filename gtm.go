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

// GT.M has no pkg-config file, so compile with CGO_CFLAGS=-I$gtm_dist and
// CGO_LDFLAGS="-L$gtm_dist -Wl,-rpath,$gtm_dist".

// #cgo LDFLAGS: -lgtmshr
// #include "gtmxc_types.h"
import "C"

// WrapperRelease is the release of this wrapper
const WrapperRelease string = "v1.0.0"

// MinimumGoRelease is the minimum Go release the wrapper is tested with
const MinimumGoRelease string = "go1.23"

// MaxMessageLength is the size of the buffers that receive $ZSTATUS and per-operation diagnostics.
const MaxMessageLength = 2048

// DefaultMaxValueLength is the default capacity of value, subscript and name buffers (1 MiB, the GT.M
// maximum string length).
const DefaultMaxValueLength = 1048576

// Call-in names. Each is looked up in the call-in table named by $GTMCI the first time it is used.
const (
	opGet     = "gtmget"
	opSet     = "gtmset"
	opKill    = "gtmkill"
	opOrder   = "gtmorder"
	opQuery   = "gtmquery"
	opLock    = "gtmlock"
	opUnlock  = "gtmunlock"
	opExecute = "gtmxecute"
)

// operations lists the call-in names in the order their descriptors are created.
var operations = []string{opGet, opSet, opKill, opOrder, opQuery, opLock, opUnlock, opExecute}

// Version returns the wrapper version string.
func Version() string {
	return "1.0"
}

// About returns a short statement of authorship and license.
func About() string {
	return "\nDeveloped by multiple contributors\nDistributed under the Apache 2.0 License.\n"
}
