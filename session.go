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
	"io/fs"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"

	"lang.yottadb.com/go/gtm/gtmerr"
	"lang.yottadb.com/go/gtm/internal/callin"
	"lang.yottadb.com/go/gtm/internal/termstate"
)

// Process-wide session states. The state only moves forward: a process gets at most one session.
const (
	stateUninitialized int32 = iota
	stateActive
	stateClosed
)

var sessionState atomic.Int32
var inInit sync.Mutex // Serializes Open and Close

// FatalHandler is called after a gtm_init() or gtm_exit() failure once the diagnostic has been written to
// stderr, the terminal attributes restored and gtm_exit() attempted. The default handler terminates the
// process with exit status 1. A replacement that returns causes Open or Close to return the *FatalError,
// but the engine must not be used again.
var FatalHandler = func(err *FatalError) {
	klog.Flush()
	os.Exit(1)
}

// exitEngine is the gtm_exit() call made on the fatal path. Tests replace it.
var exitEngine = func() { engineExit() }

// Session is the process's connection to the GT.M engine. It owns every buffer and call-in descriptor
// passed to the engine, so it must be used only by the goroutine that opened it. Open pins that
// goroutine to its OS thread until Close.
type Session struct {
	cfg           Config
	status        int            // Status of the last engine call
	statusMessage cMessageBuffer // Receives $ZSTATUS
	name          cNameBuffer    // Entity reference or M code for the next call-in
	value         BufferT        // Values for Get and Set
	index         BufferT        // Results of Order and Query
	errstr        BufferT        // Diagnostic buffer for the string-based methods
	descs         descriptors
	term          *termstate.Snapshot
	owner         int64  // goroutine id that opened the session
	tmpDir        string // Directory holding the installed gtmgo.m and gtmgo.ci, if any
	closed        bool
}

// Open starts the process's GT.M session: it prepares $GTMCI and $gtmroutines, captures the attributes of
// stdin, stdout and stderr, and calls gtm_init(). It returns an error with code gtmerr.SessionActive if a
// session is already open and gtmerr.SessionClosed if the process has already closed one.
//
// A failure of gtm_init() itself is unrecoverable and is handled by [FatalHandler].
func Open(cfg Config) (*Session, error) {
	printEntry("Open()")
	inInit.Lock()
	defer inInit.Unlock()
	switch sessionState.Load() {
	case stateActive:
		return nil, newError(gtmerr.SessionActive, "a GT.M session is already open in this process")
	case stateClosed:
		return nil, newError(gtmerr.SessionClosed, "the GT.M session for this process has been closed and cannot be reopened")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg}
	if err := s.setupEnvironment(); err != nil {
		s.removeTemp()
		return nil, err
	}
	s.term = termstate.Capture(termstate.Standard...)
	s.allocate()

	runtime.LockOSThread()
	s.owner = currentGoroutine()
	klog.V(2).Infof("gtm_init(): GTMCI=%s gtmroutines=%s gtmgbldir=%s", os.Getenv("GTMCI"), os.Getenv("gtmroutines"), os.Getenv("gtmgbldir"))
	if err := s.checkLifecycle("gtm_init", engineInit()); err != nil {
		sessionState.Store(stateClosed) // the engine state is indeterminate so never try again
		s.release()
		s.removeTemp()
		runtime.UnlockOSThread()
		return nil, err
	}
	sessionState.Store(stateActive)
	return s, nil
}

// Close ends the session with gtm_exit(), releases all buffers and descriptors, and restores the terminal
// attributes captured by Open. A failure of gtm_exit() is unrecoverable and is handled by [FatalHandler].
func (s *Session) Close() error {
	printEntry("Session.Close()")
	inInit.Lock()
	defer inInit.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	klog.V(2).Info("gtm_exit()")
	err := s.checkLifecycle("gtm_exit", engineExit())
	s.closed = true
	sessionState.Store(stateClosed)
	s.release()
	if rerr := s.term.Restore(); rerr != nil {
		klog.Warningf("%s", rerr)
	}
	s.removeTemp()
	runtime.UnlockOSThread()
	return err
}

// Config returns the configuration the session was opened with.
func (s *Session) Config() Config {
	return s.cfg
}

// Status returns the status code of the last engine call: 0 for success.
func (s *Session) Status() int {
	return s.status
}

// checkLifecycle applies the unrecoverable failure policy of gtm_init() and gtm_exit().
func (s *Session) checkLifecycle(op string, status int) error {
	s.status = status
	if status == 0 {
		return nil
	}
	msg := s.zstatus()
	fmt.Fprintln(os.Stderr, msg)
	klog.Errorf("%s failed with status %d: %s", op, status, msg)
	if syslogFatal {
		syslogEntry(fmt.Sprintf("%%GTMGO-F-%s, %s failed with status %d: %s", strings.ToUpper(op), op, status, msg))
	}
	if err := s.term.Restore(); err != nil {
		klog.Errorf("%s", err)
	}
	exitEngine()
	ferr := &FatalError{Op: op, Status: status, Message: msg}
	FatalHandler(ferr)
	return ferr
}

// check returns an error if the session may not be used by the calling goroutine.
func (s *Session) check() error {
	if s == nil || s.closed {
		return newError(gtmerr.SessionNotOpen, "session is not open")
	}
	if !s.cfg.StrictGoroutine {
		return nil
	}
	if g := currentGoroutine(); g != s.owner {
		return errorf(gtmerr.WrongGoroutine, "session opened by goroutine %d used from goroutine %d", s.owner, g)
	}
	return nil
}

// setupEnvironment exports the environment variables the engine reads during gtm_init().
func (s *Session) setupEnvironment() error {
	cfg := s.cfg
	if cfg.GlobalDirectory != "" {
		os.Setenv("gtmgbldir", cfg.GlobalDirectory)
	}
	if cfg.Routines != "" {
		os.Setenv("gtmroutines", cfg.Routines)
	}
	table := cfg.CallInTable
	if table == "" {
		dir, err := os.MkdirTemp("", "gtmgo-")
		if err != nil {
			return errorf(gtmerr.CallInInstall, "could not create directory for call-in table: %w", err)
		}
		s.tmpDir = dir
		if table, err = callin.Install(dir); err != nil {
			return errorf(gtmerr.CallInInstall, "could not install call-in table in %s: %w", dir, err)
		}
		os.Setenv("gtmroutines", strings.TrimSpace(dir+" "+os.Getenv("gtmroutines")))
		klog.V(2).Infof("installed call-in table %s", table)
	} else if _, err := callin.Load(table); err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			return errorf(gtmerr.CallInTableRead, "could not read call-in table: %w", err)
		}
		return errorf(gtmerr.CallInTableInvalid, "%w", err)
	}
	os.Setenv("GTMCI", table)
	return nil
}

// allocate creates the session's C buffers and call-in descriptors.
func (s *Session) allocate() {
	s.statusMessage = newMessageBuffer()
	s.name = newNameBuffer(s.cfg.MaxValueLength)
	s.value.Alloc(uint32(s.cfg.MaxValueLength))
	s.index.Alloc(uint32(s.cfg.MaxValueLength))
	s.errstr.Alloc(MaxMessageLength)
	s.descs = newDescriptors(operations)
}

// release frees everything allocate created.
func (s *Session) release() {
	s.descs.free()
	s.errstr.Free()
	s.index.Free()
	s.value.Free()
	s.name.free()
	s.statusMessage.free()
}

func (s *Session) removeTemp() {
	if s.tmpDir == "" {
		return
	}
	if klog.V(3).Enabled() {
		klog.Infof("leaving call-in directory %s for inspection", s.tmpDir)
		return
	}
	os.RemoveAll(s.tmpDir)
	s.tmpDir = ""
}
