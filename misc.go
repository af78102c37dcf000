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
	"log/syslog"
	"runtime"

	"github.com/outrigdev/goid"
	"k8s.io/klog/v2"

	"lang.yottadb.com/go/gtm/gtmerr"
)

////////////////////////////////////////////////////////////////////////////////////////////////////
//
// Miscellaneous functions
//
////////////////////////////////////////////////////////////////////////////////////////////////////

// printEntry logs the entry point of the function, when entered, at klog verbosity 4.
func printEntry(funcName string) {
	if !klog.V(4).Enabled() {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if ok {
		klog.V(4).Infof("Entered %s from %s at line %d", funcName, file, line)
	} else {
		klog.V(4).Infof("Entered %s", funcName)
	}
}

// syslogFatal enables the syslog record written on the fatal lifecycle path.
var syslogFatal = true

// syslogEntry records the given message in the syslog. Since these are rare or one-time per process type errors
// that get recorded here, we open a new syslog handle each time. Syslog may not be available (e.g. in containers)
// so a failure is logged but not otherwise reported.
func syslogEntry(logMsg string) {
	syslogr, err := syslog.New(syslog.LOG_INFO+syslog.LOG_USER, "[GTM-Go-Wrapper]")
	if err != nil {
		klog.V(2).Info(errorf(gtmerr.Syslog, "syslog.New() failed: %s", err).Message)
		return
	}
	defer syslogr.Close()
	if err := syslogr.Info(logMsg); err != nil {
		klog.V(2).Info(errorf(gtmerr.Syslog, "syslog write failed: %s", err).Message)
	}
}

// currentGoroutine returns the id of the calling goroutine.
func currentGoroutine() int64 {
	return goid.Get()
}
