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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	assert "github.com/stretchr/testify/require"

	"lang.yottadb.com/go/gtm"
	"lang.yottadb.com/go/gtm/gtmerr"
)

func TestWrapString(t *testing.T) {
	text := "Capacity in bytes of each value and name buffer, which also bounds the length of M references"
	wrapped := WrapString(text)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), Wrap, line)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(wrapped))
	assert.Equal(t, "", WrapString("   "))
	long := strings.Repeat("x", Wrap+10)
	assert.Equal(t, long, WrapString(long))
}

func TestPrintValue(t *testing.T) {
	var out bytes.Buffer
	printValue(&out, `^x(1)`, "a\"b", true)
	printValue(&out, `^x(2)`, "12", true)
	printValue(&out, `^x(3)`, "raw", false)
	assert.Equal(t, "^x(1)=\"a\"\"b\"\n^x(2)=12\nraw\n", out.String())
}

// resetViper gives each test its own configuration
func resetViper(t *testing.T) {
	viper.Reset()
	initConfig()
	t.Cleanup(viper.Reset)
}

func TestSessionConfigDefaults(t *testing.T) {
	t.Setenv(gtm.EnvMaxValueLength, "")
	t.Setenv(gtm.EnvTruncation, "")
	t.Setenv("GTMCI", "")
	resetViper(t)
	cfg, err := getSessionConfig()
	assert.Nil(t, err)
	assert.Equal(t, gtm.DefaultConfig(), cfg)
}

func TestSessionConfigOverrides(t *testing.T) {
	t.Setenv(gtm.EnvMaxValueLength, "4096")
	t.Setenv("GTMCI", "/from/env.ci")
	t.Setenv("GTMGO_TRUNCATION", "silent")
	t.Setenv("GTMGO_GBLDIR", "/db/test.gld")
	resetViper(t)
	viper.Set("ci-table", "/from/flag.ci")
	cfg, err := getSessionConfig()
	assert.Nil(t, err)
	assert.Equal(t, 4096, cfg.MaxValueLength)
	assert.Equal(t, gtm.TruncateSilent, cfg.Truncation)
	assert.Equal(t, "/from/flag.ci", cfg.CallInTable)
	assert.Equal(t, "/db/test.gld", cfg.GlobalDirectory)

	viper.Set("max-value-length", 0)
	_, err = getSessionConfig()
	assert.True(t, gtm.ErrorIs(err, gtmerr.ConfigInvalid), err)

	viper.Set("max-value-length", 100)
	viper.Set("truncation", "maybe")
	_, err = getSessionConfig()
	assert.True(t, gtm.ErrorIs(err, gtmerr.ConfigInvalid), err)
}

func TestSessionConfigBadEnvironment(t *testing.T) {
	t.Setenv(gtm.EnvMaxValueLength, "lots")
	resetViper(t)
	_, err := getSessionConfig()
	assert.True(t, gtm.ErrorIs(err, gtmerr.ConfigInvalid), err)
	assert.Contains(t, err.Error(), "environment")
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"get", "set", "kill", "order", "query", "lock", "unlock", "xecute", "subs", "walk", "version"} {
		assert.True(t, names[want], want)
	}
	for _, flag := range []string{"max-value-length", "truncation", "ci-table", "routines", "gbldir", "metrics", "v"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestCloseWithoutSession(t *testing.T) {
	session = nil
	assert.Nil(t, closeSession(nil, nil))
}
