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
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lang.yottadb.com/go/gtm"
)

const (
	// Wrap is the number of characters to wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		if lineWidth > 0 && lineWidth+1+len(word) > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}
		currentLine.WriteString(word)
		lineWidth += len(word)
	}
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}
	return strings.Join(wrappedLines, "\n")
}

// setupSessionFlags adds the flags that configure the session to cmd
func setupSessionFlags(cmd *cobra.Command) {
	key := "max-value-length"
	cmd.PersistentFlags().Int(key, gtm.DefaultMaxValueLength, WrapString("Capacity in bytes of each value and name buffer"))

	key = "truncation"
	cmd.PersistentFlags().String(key, "error", WrapString("What to do with values longer than the buffers (error, silent)"))

	key = "ci-table"
	cmd.PersistentFlags().String(key, "", WrapString("Call-in table to use instead of the embedded one; it must declare every gtmgo entry point"))

	key = "routines"
	cmd.PersistentFlags().String(key, "", WrapString("Replaces $gtmroutines before the engine starts"))

	key = "gbldir"
	cmd.PersistentFlags().String(key, "", WrapString("Replaces $gtmgbldir before the engine starts"))

	key = "metrics"
	cmd.PersistentFlags().Bool(key, false, WrapString("Write call-in metrics in Prometheus format to stderr when the command finishes"))
}

// initConfig initializes configuration from environment variables
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("gtmgo")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// bindCommandFlags binds the flags of cmd to viper
func bindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// getSessionConfig builds the session configuration: the library's own environment variables first, then
// anything set as a flag or GTMGO_ variable.
func getSessionConfig() (gtm.Config, error) {
	cfg, err := gtm.ConfigFromEnv()
	if err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if viper.IsSet("max-value-length") {
		cfg.MaxValueLength = viper.GetInt("max-value-length")
	}
	if viper.IsSet("truncation") {
		if cfg.Truncation, err = gtm.ParseTruncationPolicy(viper.GetString("truncation")); err != nil {
			return cfg, err
		}
	}
	if v := viper.GetString("ci-table"); v != "" {
		cfg.CallInTable = v
	}
	cfg.Routines = viper.GetString("routines")
	cfg.GlobalDirectory = viper.GetString("gbldir")
	return cfg, cfg.Validate()
}
