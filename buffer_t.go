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
	"io"
	"os"
	"unsafe"

	"lang.yottadb.com/go/gtm/gtmerr"
)

// #include <stdlib.h>
// #include "gtmxc_types.h"
import "C"

// BufferT is a value buffer passed to the engine: a C-allocated gtm_string_t and the storage it points at.
//
// The storage is two bytes larger than the capacity given to Alloc(). The first extra byte lets the wrapper
// offer the engine one byte more than the capacity so that an oversized result is detectable. The second
// holds the NUL terminator that the wrapper appends after every call that yields a value.
type BufferT struct {
	cbuft    *C.gtm_string_t // C flavor of the gtm_string_t struct; length is the used length
	lenAlloc uint32          // Usable capacity of cbuft.address
}

// Alloc is a method to allocate the gtm_string_t C storage and allocate or re-allocate the buffer pointed
// to by that struct.
func (buft *BufferT) Alloc(bufSiz uint32) {
	printEntry("BufferT.Alloc()")
	if buft.cbuft != nil {
		// We already have a gtm_string_t, just get rid of current buffer for re-allocate
		C.free(unsafe.Pointer(buft.cbuft.address))
		buft.cbuft.address = nil
	} else {
		buft.cbuft = (*C.gtm_string_t)(C.malloc(C.size_t(C.sizeof_gtm_string_t)))
		buft.cbuft.address = nil
	}
	buft.cbuft.length = 0
	buft.lenAlloc = 0
	buft.cbuft.address = (*C.gtm_char_t)(C.calloc(C.size_t(bufSiz)+2, 1))
	buft.lenAlloc = bufSiz
}

// Free is a method to release both the buffer and gtm_string_t block associated with the BufferT block.
// It is safe to call Free more than once.
func (buft *BufferT) Free() {
	printEntry("BufferT.Free()")
	if buft.cbuft == nil {
		return
	}
	if buft.cbuft.address != nil {
		C.free(unsafe.Pointer(buft.cbuft.address))
	}
	C.free(unsafe.Pointer(buft.cbuft))
	buft.cbuft = nil
	buft.lenAlloc = 0
}

// Dump is a method to write the contents of a BufferT block to w (stdout if nil) for debugging purposes.
func (buft *BufferT) Dump(w io.Writer) {
	printEntry("BufferT.Dump()")
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "BufferT.Dump(): cbuftptr: %p", buft.cbuft)
	if buft.cbuft != nil {
		fmt.Fprintf(w, ", address: %p, lenAlloc: %v, length: %v", buft.cbuft.address, buft.lenAlloc, buft.cbuft.length)
		if used := buft.used(); used > 0 {
			fmt.Fprintf(w, ", value: %s", C.GoStringN((*C.char)(buft.cbuft.address), C.int(used)))
		}
	}
	fmt.Fprintf(w, "\n")
}

// notAllocd returns the error given when a BufferT is used before Alloc() or after Free().
func notAllocd() error {
	return newError(gtmerr.StructNotAllocd, "Structure not previously called with Alloc() method")
}

// LenAlloc is a method to fetch the capacity of the buffer.
func (buft *BufferT) LenAlloc() (uint32, error) {
	if buft == nil || buft.cbuft == nil {
		return 0, notAllocd()
	}
	return buft.lenAlloc, nil
}

// LenUsed is a method to fetch the used length of the buffer.
func (buft *BufferT) LenUsed() (uint32, error) {
	if buft == nil || buft.cbuft == nil {
		return 0, notAllocd()
	}
	return uint32(buft.used()), nil
}

// ValBAry is a method to fetch a copy of the buffer contents as a byte slice.
func (buft *BufferT) ValBAry() ([]byte, error) {
	if buft == nil || buft.cbuft == nil {
		return nil, notAllocd()
	}
	return C.GoBytes(unsafe.Pointer(buft.cbuft.address), C.int(buft.used())), nil
}

// ValStr is a method to fetch a copy of the buffer contents as a string.
func (buft *BufferT) ValStr() (string, error) {
	if buft == nil || buft.cbuft == nil {
		return "", notAllocd()
	}
	return buft.str(), nil
}

// SetLenUsed is a method to set the used length of the buffer (must be <= LenAlloc()).
func (buft *BufferT) SetLenUsed(newLen uint32) error {
	if buft == nil || buft.cbuft == nil {
		return notAllocd()
	}
	if newLen > buft.lenAlloc {
		return errorf(gtmerr.InvalidLength, "Invalid string length %d: max %d", newLen, buft.lenAlloc)
	}
	buft.cbuft.length = C.gtm_long_t(newLen)
	buft.terminate(int(newLen))
	return nil
}

// SetValBAry is a method to copy val into the buffer.
func (buft *BufferT) SetValBAry(val []byte) error {
	if buft == nil || buft.cbuft == nil {
		return notAllocd()
	}
	if uint64(len(val)) > uint64(buft.lenAlloc) {
		return errorf(gtmerr.InvalidLength, "Invalid string length %d: max %d", len(val), buft.lenAlloc)
	}
	copy(buft.bytes(), val)
	buft.cbuft.length = C.gtm_long_t(len(val))
	buft.terminate(len(val))
	return nil
}

// SetValStr is a method to copy val into the buffer.
func (buft *BufferT) SetValStr(val string) error {
	if buft == nil || buft.cbuft == nil {
		return notAllocd()
	}
	if uint64(len(val)) > uint64(buft.lenAlloc) {
		return errorf(gtmerr.InvalidLength, "Invalid string length %d: max %d", len(val), buft.lenAlloc)
	}
	copy(buft.bytes(), val)
	buft.cbuft.length = C.gtm_long_t(len(val))
	buft.terminate(len(val))
	return nil
}

// ---- Internal helpers used around calls into the engine

// bytes returns the whole C storage, including the sentinel and terminator bytes, as a Go slice.
func (buft *BufferT) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(buft.cbuft.address)), int(buft.lenAlloc)+2)
}

// used returns the used length clamped to the capacity.
func (buft *BufferT) used() int {
	n := int(buft.cbuft.length)
	if n < 0 {
		return 0
	}
	if n > int(buft.lenAlloc) {
		return int(buft.lenAlloc)
	}
	return n
}

// str returns the used part of the buffer as a Go string.
func (buft *BufferT) str() string {
	return C.GoStringN((*C.char)(buft.cbuft.address), C.int(buft.used()))
}

// terminate writes the NUL terminator at offset n.
func (buft *BufferT) terminate(n int) {
	buft.bytes()[n] = 0
}

// clear empties the buffer so that stale content is never read as a fresh result.
func (buft *BufferT) clear() {
	buft.cbuft.length = 0
	buft.terminate(0)
}

// prepareOutput offers the engine the full capacity plus the sentinel byte.
func (buft *BufferT) prepareOutput() {
	buft.cbuft.length = C.gtm_long_t(buft.lenAlloc) + 1
	buft.terminate(0)
}

// finishOutput NUL terminates the buffer at the length reported by the engine and reports whether the
// engine's value was longer than the capacity. A truncated buffer is cut back to exactly its capacity.
func (buft *BufferT) finishOutput() (truncated bool) {
	n := int(buft.cbuft.length)
	if n > int(buft.lenAlloc) {
		truncated = true
		n = int(buft.lenAlloc)
	}
	if n < 0 {
		n = 0
	}
	buft.cbuft.length = C.gtm_long_t(n)
	buft.terminate(n)
	return truncated
}
