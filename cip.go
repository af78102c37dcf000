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

// This file holds every direct call into libgtmshr. gtm_cip() is variadic, which cgo cannot call, so each
// call-in shape used by gtmgo.ci gets a fixed-arity static wrapper below. Static functions in a cgo
// preamble are only visible to the Go file that declares them, so all callers live here too.

/*
#include <stdlib.h>
#include "gtmxc_types.h"

static int gtmgo_init(void) {
	return (int)gtm_init();
}

static int gtmgo_exit(void) {
	return (int)gtm_exit();
}

static void gtmgo_zstatus(char *msg, int len) {
	gtm_zstatus(msg, len);
}

// name, value, error: gtmget gtmset gtmorder gtmquery
static int gtmgo_cip_value(ci_name_descriptor *desc, char *name, gtm_string_t *value, gtm_string_t *err) {
	return (int)gtm_cip(desc, name, value, err);
}

// name, error: gtmkill gtmunlock gtmxecute
static int gtmgo_cip_name(ci_name_descriptor *desc, char *name, gtm_string_t *err) {
	return (int)gtm_cip(desc, name, err);
}

// name, timeout, error: gtmlock
static int gtmgo_cip_lock(ci_name_descriptor *desc, char *name, long timeout, gtm_string_t *err) {
	return (int)gtm_cip(desc, name, (gtm_long_t)timeout, err);
}
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// engineInit calls gtm_init() and returns its status.
func engineInit() int {
	return int(C.gtmgo_init())
}

// engineExit calls gtm_exit() and returns its status.
func engineExit() int {
	return int(C.gtmgo_exit())
}

// cNameBuffer is the NUL-terminated region that carries entity references and M code to the engine.
type cNameBuffer struct {
	addr *C.char
	cap  int // usable bytes, excluding the terminator
}

func newNameBuffer(capacity int) cNameBuffer {
	return cNameBuffer{addr: (*C.char)(C.calloc(C.size_t(capacity)+1, 1)), cap: capacity}
}

func (nb *cNameBuffer) free() {
	if nb.addr != nil {
		C.free(unsafe.Pointer(nb.addr))
		nb.addr = nil
	}
}

// set copies s into the buffer and terminates it. The caller has already checked len(s) <= cap.
func (nb *cNameBuffer) set(s string) {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(nb.addr)), nb.cap+1)
	n := copy(buf, s)
	buf[n] = 0
}

// cMessageBuffer receives $ZSTATUS from gtm_zstatus().
type cMessageBuffer struct {
	addr *C.char
}

func newMessageBuffer() cMessageBuffer {
	return cMessageBuffer{addr: (*C.char)(C.calloc(MaxMessageLength, 1))}
}

func (mb *cMessageBuffer) free() {
	if mb.addr != nil {
		C.free(unsafe.Pointer(mb.addr))
		mb.addr = nil
	}
}

// zstatus fetches $ZSTATUS into the session's status message buffer and returns it as a Go string.
func (s *Session) zstatus() string {
	if s.statusMessage.addr == nil {
		return ""
	}
	*s.statusMessage.addr = 0
	C.gtmgo_zstatus(s.statusMessage.addr, C.int(MaxMessageLength))
	return C.GoString(s.statusMessage.addr)
}

// cipValue invokes a call-in taking (name, value, error).
func (s *Session) cipValue(op string, value, errstr *BufferT) int {
	status := C.gtmgo_cip_value(s.descs[op].c, s.name.addr, value.cbuft, errstr.cbuft)
	runtime.KeepAlive(value)
	runtime.KeepAlive(errstr)
	return int(status)
}

// cipName invokes a call-in taking (name, error).
func (s *Session) cipName(op string, errstr *BufferT) int {
	status := C.gtmgo_cip_name(s.descs[op].c, s.name.addr, errstr.cbuft)
	runtime.KeepAlive(errstr)
	return int(status)
}

// cipLock invokes gtmlock with a timeout in milliseconds; a negative timeout waits indefinitely.
func (s *Session) cipLock(timeoutMs int64, errstr *BufferT) int {
	status := C.gtmgo_cip_lock(s.descs[opLock].c, s.name.addr, C.long(timeoutMs), errstr.cbuft)
	runtime.KeepAlive(errstr)
	return int(status)
}
