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

/*
Package gtm provides a Go wrapper for GT.M by way of the GT.M call-in interface.

# GT.M Quick Start

The wrapper links against libgtmshr and includes gtmxc_types.h from the GT.M distribution. Point cgo at it
before building:

	export gtm_dist=/usr/lib/fis-gtm/V7.1-002_x86_64
	export CGO_CFLAGS="-I$gtm_dist"
	export CGO_LDFLAGS="-L$gtm_dist -Wl,-rpath,$gtm_dist"
	go get lang.yottadb.com/go/gtm

A process has at most one session. Open it from the goroutine that will make every call and close it before
the process exits:

	s, err := gtm.Open(gtm.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer s.Close()
	s.Set(`^hello("world")`, "Go World")
	v, err := s.Get(`^hello("world")`)

Open writes the wrapper's M routine and call-in table (gtmgo.m and gtmgo.ci) to a temporary directory, exports
it as $GTMCI and prepends the directory to $gtmroutines, unless Config.CallInTable names a table the
application has installed itself. The database is the one named by $gtmgbldir.

# Easy API

The methods on Session that take and return Go strings: Get, Set, Kill, Order, Query, Lock, LockTimeout,
Unlock and Execute, plus the traversal iterators Subscripts, References and Descendants. Variables are named
by M entity references such as `^x(1,"a")`; package mref builds and splits them. Local variable names
starting with %gtmgo belong to the wrapper's M routine and are rejected with gtmerr.NameReserved.

# Simple API

The methods ending in ST take caller-allocated BufferT values. They share one convention: the diagnostic
buffer errstr is cleared on entry and is non-empty after a failure, holding the text of $ZSTATUS. The same
failure is also returned as an *Error. Call Free() on every BufferT that has been allocated: the storage is
C memory that Go does not collect.

# Errors

Every per-operation failure is an *Error whose Code is the GT.M error number from $ZSTATUS, or one of the
codes in package gtmerr for conditions detected by the wrapper (truncation, lock timeout, misuse of the
session). The session stays usable after such a failure. IsUndefined identifies reads of variables that have
no value.

Failures of gtm_init() and gtm_exit() are different: the engine cannot be used afterwards, so they are passed
to FatalHandler as a *FatalError, which by default ends the process.

# Values and truncation

Session buffers hold Config.MaxValueLength bytes (1 MiB by default). Under TruncateError, values longer than
that are rejected on the way in (gtmerr.ValueTooLong) and reported on the way out (gtmerr.ValueTruncated);
TruncateSilent cuts them instead.

# Logging and metrics

The wrapper logs with k8s.io/klog/v2: lifecycle events at V(2) and every entry point at V(4). Call counts,
error counts and durations per call-in are kept with github.com/VictoriaMetrics/metrics and written in
Prometheus text format by WriteMetrics.
*/
package gtm
