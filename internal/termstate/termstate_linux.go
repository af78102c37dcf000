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

package termstate

import "golang.org/x/sys/unix"

// TCSETS applies attributes immediately, matching tcsetattr(fd, TCSANOW, ...).
const (
	ioctlGet = unix.TCGETS
	ioctlSet = unix.TCSETS
)
