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

import "unsafe"

// #include <stdlib.h>
// #include "gtmxc_types.h"
import "C"

// descriptor binds a call-in name to the handle the engine caches in it after the first gtm_cip() call.
// Both the ci_name_descriptor and its name live in C memory since the engine keeps a pointer to them.
type descriptor struct {
	name string
	c    *C.ci_name_descriptor
}

func newDescriptor(name string) *descriptor {
	cdesc := (*C.ci_name_descriptor)(C.calloc(1, C.size_t(C.sizeof_ci_name_descriptor)))
	cdesc.rtn_name.address = (*C.gtm_char_t)(C.CString(name))
	cdesc.rtn_name.length = C.gtm_long_t(len(name))
	cdesc.handle = nil // resolved by the engine on first use
	return &descriptor{name: name, c: cdesc}
}

func (d *descriptor) free() {
	if d.c == nil {
		return
	}
	C.free(unsafe.Pointer(d.c.rtn_name.address))
	C.free(unsafe.Pointer(d.c))
	d.c = nil
}

// descriptors holds one descriptor per call-in name for the life of a session.
type descriptors map[string]*descriptor

func newDescriptors(names []string) descriptors {
	descs := make(descriptors, len(names))
	for _, name := range names {
		descs[name] = newDescriptor(name)
	}
	return descs
}

func (descs descriptors) free() {
	for _, d := range descs {
		d.free()
	}
}
