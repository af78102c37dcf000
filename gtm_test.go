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
	"flag"
	"log"
	"os"
	"testing"

	"lang.yottadb.com/go/gtm/internal/test_helpers"
)

// Set up custom `go test` options
var testSyslog bool // Let the fatal-path test write a syslog entry. Off by default because syslog may not be set up (as in a CI pipeline)
var testNoDB bool   // Run without creating a test database (use the default specified by environment variable gtmgbldir)

func init() {
	flag.BoolVar(&testSyslog, "syslog", false, "check that the fatal path can output a syslog entry")
	flag.BoolVar(&testNoDB, "nodb", false, "run without creating a test database (use the default specified by gtmgbldir)")
}

// testValueLength is the buffer capacity used by the test session. It is kept small so that truncation
// can be exercised cheaply.
const testValueLength = 4096

// testGlobal is the only global variable the tests write.
const testGlobal = "^gtmgotest"

// sess is the process's one session, opened by TestMain.
var sess *Session

// _testMain is factored out of TestMain so that defers run before os.Exit().
func _testMain(m *testing.M) int {
	testDir, err := os.MkdirTemp("", "gtmgotest-")
	if err != nil {
		log.Panic(err)
	}

	flag.Parse()
	verbose := testing.Verbose()
	logfile := test_helpers.SetupLogger(testDir, verbose)
	defer logfile.Close()
	log.Printf("Test directory is %s", testDir)
	syslogFatal = testSyslog

	if !testNoDB {
		if _, err := test_helpers.SetupDatabase(testDir); err != nil {
			log.Panic(err)
		}
	}

	cfg := DefaultConfig()
	cfg.MaxValueLength = testValueLength
	// Tests run in goroutines other than this one, one at a time
	cfg.StrictGoroutine = false
	sess, err = Open(cfg)
	if err != nil {
		log.Panic(err)
	}

	ret := m.Run()

	if err := sess.Close(); err != nil {
		log.Printf("Close: %s", err)
		ret = 1
	}
	// Cleanup the temp directory, but leave it if we are in verbose mode or the test failed
	if !verbose && ret == 0 {
		os.RemoveAll(testDir)
	}
	return ret
}

// TestMain is the entry point for tests.
func TestMain(m *testing.M) {
	code := _testMain(m)
	os.Exit(code)
}

// SetupTest is called by each test to clear the test global and all local variables.
func SetupTest(t testing.TB) *Session {
	t.Helper()
	sess.cfg.Truncation = TruncateError
	// %gtmgoC and %gtmgoE are the formal parameters of xecute^gtmgo
	test_helpers.Assertnoerr(sess.Execute("kill (%gtmgoC,%gtmgoE)"), t)
	test_helpers.Assertnoerr(sess.Kill(testGlobal), t)
	return sess
}
