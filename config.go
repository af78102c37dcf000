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
	"os"
	"strconv"
	"strings"

	"lang.yottadb.com/go/gtm/gtmerr"
)

// TruncationPolicy selects what happens when a value does not fit in a session buffer.
type TruncationPolicy int

const (
	// TruncateError rejects outbound values longer than MaxValueLength with gtmerr.ValueTooLong and
	// reports inbound values that were cut short with gtmerr.ValueTruncated.
	TruncateError TruncationPolicy = iota
	// TruncateSilent cuts values at MaxValueLength without reporting an error.
	TruncateSilent
)

func (p TruncationPolicy) String() string {
	switch p {
	case TruncateError:
		return "error"
	case TruncateSilent:
		return "silent"
	}
	return "TruncationPolicy(" + strconv.Itoa(int(p)) + ")"
}

// ParseTruncationPolicy converts "error" or "silent" into a TruncationPolicy.
func ParseTruncationPolicy(s string) (TruncationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return TruncateError, nil
	case "silent", "truncate":
		return TruncateSilent, nil
	}
	return TruncateError, errorf(gtmerr.ConfigInvalid, "invalid truncation policy %q (must be error or silent)", s)
}

// Config holds the settings used by [Open]. The zero value is not usable: start from [DefaultConfig] or [ConfigFromEnv].
type Config struct {
	// MaxValueLength is the capacity in bytes of each value, subscript and name buffer.
	MaxValueLength int
	// Truncation selects how values longer than MaxValueLength are treated.
	Truncation TruncationPolicy
	// CallInTable is the path of the call-in table to export as $GTMCI. If empty, the embedded gtmgo.ci
	// and gtmgo.m are written to a temporary directory which is prepended to $gtmroutines.
	CallInTable string
	// Routines, if not empty, replaces $gtmroutines before the engine is initialized.
	Routines string
	// GlobalDirectory, if not empty, replaces $gtmgbldir before the engine is initialized.
	GlobalDirectory string
	// StrictGoroutine makes every operation fail with gtmerr.WrongGoroutine unless it is called from the
	// goroutine that opened the session. Disable it only if the application serializes all calls itself.
	StrictGoroutine bool
}

// DefaultConfig returns the default configuration: 1 MiB buffers that report truncation as an error,
// usable only from the goroutine that opens the session.
func DefaultConfig() Config {
	return Config{
		MaxValueLength:  DefaultMaxValueLength,
		Truncation:      TruncateError,
		StrictGoroutine: true,
	}
}

// Environment variables read by ConfigFromEnv in addition to the engine's own.
const (
	EnvMaxValueLength = "gtmgo_max_value_length"
	EnvTruncation     = "gtmgo_truncation"
)

// ConfigFromEnv returns DefaultConfig overridden by $gtmgo_max_value_length, $gtmgo_truncation and $GTMCI.
// $gtmroutines and $gtmgbldir are left for the engine to read directly.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvMaxValueLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errorf(gtmerr.ConfigInvalid, "$%s=%q is not an integer", EnvMaxValueLength, v)
		}
		cfg.MaxValueLength = n
	}
	policy, err := ParseTruncationPolicy(os.Getenv(EnvTruncation))
	if err != nil {
		return cfg, err
	}
	cfg.Truncation = policy
	cfg.CallInTable = os.Getenv("GTMCI")
	return cfg, cfg.Validate()
}

// Validate checks that cfg can be used to open a session.
func (cfg Config) Validate() error {
	if cfg.MaxValueLength <= 0 || cfg.MaxValueLength > DefaultMaxValueLength {
		return errorf(gtmerr.ConfigInvalid, "MaxValueLength %d must be between 1 and %d", cfg.MaxValueLength, DefaultMaxValueLength)
	}
	if cfg.Truncation != TruncateError && cfg.Truncation != TruncateSilent {
		return errorf(gtmerr.ConfigInvalid, "invalid truncation policy %s", cfg.Truncation)
	}
	return nil
}
