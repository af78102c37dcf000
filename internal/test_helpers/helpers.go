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

// Package test_helpers creates throwaway GT.M databases and inspects engine state for the wrapper's tests.
// It runs the GT.M utilities in $gtm_dist and does not itself link with the engine.
package test_helpers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// DebugFlag enables printing of utility output
const DebugFlag bool = false

// Assertnoerr fails the test immediately if err is not nil, reporting the caller's location.
func Assertnoerr(err error, t testing.TB) {
	t.Helper()
	if err != nil {
		_, file, line, ok := runtime.Caller(1)
		if ok {
			t.Fatalf("Assertion failure in %v at line %v with error: %v", file, line, err)
		} else {
			t.Fatalf("Assertion failure: %v", err)
		}
	}
}

// Dist returns $gtm_dist or an error if it is not set.
func Dist() (string, error) {
	dist := os.Getenv("gtm_dist")
	if dist == "" {
		return "", fmt.Errorf("gtm_dist must be set to the GT.M installation directory")
	}
	return dist, nil
}

// SetupLogger directs the standard logger to dir/output.log, and also to stderr if verbose.
func SetupLogger(dir string, verbose bool) *os.File {
	f, err := os.OpenFile(filepath.Join(dir, "output.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Panic(err)
	}
	var w io.Writer = f
	if verbose {
		w = io.MultiWriter(f, os.Stderr)
	}
	log.SetPrefix("GTMGo:")
	log.SetFlags(log.Lshortfile)
	log.SetOutput(w)
	return f
}

// SetupDatabase creates a global directory and database file in dir using GDE and MUPIP, and
// points $gtmgbldir at it. It returns the path of the global directory.
func SetupDatabase(dir string) (string, error) {
	dist, err := Dist()
	if err != nil {
		return "", err
	}
	gbldir := filepath.Join(dir, "mumps.gld")
	datfile := filepath.Join(dir, "mumps.dat")
	os.Setenv("gtmgbldir", gbldir)

	// Create global directory
	cmd := exec.Command(filepath.Join(dist, "mumps"), "-run", "^GDE", "change -segment DEFAULT -file_name="+datfile)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	log.Printf("%s\n", output)
	if err != nil {
		return "", fmt.Errorf("GDE failed: %w", err)
	}

	// Create database itself
	cmd = exec.Command(filepath.Join(dist, "mupip"), "create")
	cmd.Dir = dir
	output, err = cmd.CombinedOutput()
	log.Printf("%s\n", output)
	if err != nil {
		return "", fmt.Errorf("MUPIP CREATE failed: %w", err)
	}
	return gbldir, nil
}

// LockExists returns whether a lock on lockpath is owned by some process, using GT.M's LKE utility.
func LockExists(lockpath string) (bool, error) {
	dist, err := Dist()
	if err != nil {
		return false, err
	}
	var outbuff bytes.Buffer
	cmd := exec.Command(filepath.Join(dist, "lke"), "show", "-all", "-wait")
	cmd.Stdout = &outbuff
	cmd.Stderr = &outbuff
	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("LKE failed: %w: %s", err, outbuff.String())
	}
	output := outbuff.Bytes()
	if DebugFlag {
		fmt.Printf("finding '%s' in:\n%s\n", lockpath+" Owned", string(output))
	}
	return bytes.Contains(output, []byte(lockpath+" Owned")), nil
}

// HoldLock starts a separate mumps process that locks lockpath and holds it until release is called
// or hold elapses. It returns once the lock is owned.
func HoldLock(lockpath string, hold time.Duration) (release func(), err error) {
	dist, err := Dist()
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(filepath.Join(dist, "mumps"), "-direct")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	release = func() {
		stdin.Close()
		cmd.Process.Kill()
		cmd.Wait()
	}
	fmt.Fprintf(stdin, "lock +%s write \"HE\"_\"LD\",! hang %d halt\n", lockpath, int(hold.Seconds()))
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "HELD") {
			return release, nil
		}
	}
	release()
	return nil, fmt.Errorf("mumps process exited before locking %s", lockpath)
}
