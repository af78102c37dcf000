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

// Package termstate saves and restores terminal attributes of file descriptors.
//
// The GT.M runtime reconfigures the terminal when it initializes and does not always put it back,
// for example when a process exits through a fatal error. The wrapper captures the attributes of
// stdin, stdout and stderr before initializing the engine and restores them at teardown.
package termstate

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Standard descriptors in the order they are restored: stderr first, then stdout, then stdin.
var Standard = []int{2, 1, 0}

type saved struct {
	fd      int
	termios unix.Termios
	valid   bool // false if fd was not a terminal at capture time
}

// Snapshot holds terminal attributes captured for a set of file descriptors.
type Snapshot struct {
	fds []saved
}

// Capture records the current attributes of each descriptor in fds.
// Descriptors that are not terminals are remembered but skipped by Restore.
func Capture(fds ...int) *Snapshot {
	snap := &Snapshot{fds: make([]saved, 0, len(fds))}
	for _, fd := range fds {
		s := saved{fd: fd}
		if t, err := unix.IoctlGetTermios(fd, ioctlGet); err == nil {
			s.termios = *t
			s.valid = true
		}
		snap.fds = append(snap.fds, s)
	}
	return snap
}

// IsTerminal reports whether fd was a terminal when the snapshot was captured.
func (snap *Snapshot) IsTerminal(fd int) bool {
	for _, s := range snap.fds {
		if s.fd == fd {
			return s.valid
		}
	}
	return false
}

// Restore applies the captured attributes to every descriptor that was a terminal at capture time,
// in capture order. It attempts every descriptor and returns the joined errors.
func (snap *Snapshot) Restore() error {
	if snap == nil {
		return nil
	}
	var errs []error
	for i := range snap.fds {
		s := &snap.fds[i]
		if !s.valid {
			continue
		}
		if err := unix.IoctlSetTermios(s.fd, ioctlSet, &s.termios); err != nil {
			errs = append(errs, fmt.Errorf("restore terminal attributes of fd %d: %w", s.fd, err))
		}
	}
	return errors.Join(errs...)
}
