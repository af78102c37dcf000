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
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"lang.yottadb.com/go/gtm"
)

var (
	// session is opened before any command that needs the engine and closed after it
	session *gtm.Session

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "gtm",
		Short: "access a GT.M database from the command line",
		Long: fmt.Sprintf(`gtm (wrapper v%s)

Reads and writes GT.M local and global variables, takes locks and
runs M code through the GT.M call-in interface. Variables are named
by M references such as ^x(1,"a").`, gtm.WrapperRelease),
		PersistentPreRunE:  openSession,
		PersistentPostRunE: closeSession,
		SilenceUsage:       true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the wrapper version, and the engine release with --engine",
		// Only --engine needs a session
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if engine, _ := cmd.Flags().GetBool("engine"); engine {
				return openSession(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("gtm wrapper %s (API %s)\n", gtm.WrapperRelease, gtm.Version())
			if session == nil {
				return nil
			}
			release, err := session.EngineRelease()
			if err != nil {
				return err
			}
			fmt.Println(release)
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	setupSessionFlags(rootCmd)
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	versionCmd.Flags().Bool("engine", false, WrapString("Also start the engine and print $ZVERSION"))
	rootCmd.AddCommand(versionCmd)
	addCommands(rootCmd)
}

// openSession opens the process's session from flags, GTMGO_ variables and the engine's environment
func openSession(cmd *cobra.Command, _ []string) error {
	if err := bindCommandFlags(cmd); err != nil {
		return err
	}
	cfg, err := getSessionConfig()
	if err != nil {
		return err
	}
	session, err = gtm.Open(cfg)
	if err != nil {
		return fmt.Errorf("could not open GT.M session: %w", err)
	}
	return nil
}

// closeSession closes the session if one is open. It is safe to call more than once.
func closeSession(_ *cobra.Command, _ []string) error {
	if session == nil {
		return nil
	}
	err := session.Close()
	session = nil
	if viper.GetBool("metrics") {
		gtm.WriteMetrics(os.Stderr)
	}
	return err
}

// Execute runs the root command and closes the session even if the command failed.
func Execute() int {
	err := rootCmd.Execute()
	if cerr := closeSession(nil, nil); cerr != nil {
		fmt.Fprintln(os.Stderr, "Error:", cerr)
		err = cerr
	}
	klog.Flush()
	if err != nil {
		return 1
	}
	return 0
}
