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
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lang.yottadb.com/go/gtm"
	"lang.yottadb.com/go/gtm/mref"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [ref]",
		Short: "Prints the value of a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := session.Get(args[0])
			if gtm.IsUndefined(err) {
				if def, _ := cmd.Flags().GetString("default"); cmd.Flags().Changed("default") {
					fmt.Println(def)
					return nil
				}
			}
			if err != nil {
				return err
			}
			zwr, _ := cmd.Flags().GetBool("zwrite")
			printValue(os.Stdout, args[0], value, zwr)
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [ref] [value]",
		Short: "Sets a variable to a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.Set(args[0], args[1])
		},
	}
	killCmd = &cobra.Command{
		Use:   "kill [ref]",
		Short: "Kills a variable and all its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.Kill(args[0])
		},
	}
	orderCmd = &cobra.Command{
		Use:   "order [ref]",
		Short: "Prints the next subscript at the level of the last subscript of ref ($ORDER)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := session.Order(args[0])
			if err != nil {
				return err
			}
			fmt.Println(next)
			return nil
		},
	}
	queryCmd = &cobra.Command{
		Use:   "query [ref]",
		Short: "Prints the next reference after ref that has a value ($QUERY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := session.Query(args[0])
			if err != nil {
				return err
			}
			fmt.Println(next)
			return nil
		},
	}
	lockCmd = &cobra.Command{
		Use:   "lock [ref]",
		Short: "Takes a lock, optionally holds it for a while, and releases it",
		Long: `Takes an incremental lock on ref. The engine releases every lock when
the process exits, so use --hold to keep the lock for a while, or
--exec to run M code while holding it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			hold, _ := cmd.Flags().GetDuration("hold")
			code, _ := cmd.Flags().GetString("exec")
			var err error
			if timeout < 0 {
				err = session.Lock(args[0])
			} else {
				err = session.LockTimeout(args[0], timeout)
			}
			if err != nil {
				return fmt.Errorf("lock %s: %w", args[0], err)
			}
			fmt.Println("locked", args[0])
			if code != "" {
				err = session.Execute(code)
			}
			time.Sleep(hold)
			if uerr := session.Unlock(args[0]); uerr != nil && err == nil {
				err = uerr
			}
			return err
		},
	}
	unlockCmd = &cobra.Command{
		Use:   "unlock [ref]",
		Short: "Decrements the lock count of ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.Unlock(args[0])
		},
	}
	xecuteCmd = &cobra.Command{
		Use:   "xecute [code...]",
		Short: "Runs M code, e.g. xecute 'write $zversion,!'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.Execute(strings.Join(args, " "))
		},
	}
	subsCmd = &cobra.Command{
		Use:   "subs [ref]",
		Short: "Lists the subscripts immediately below ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for sub, err := range session.Subscripts(args[0]) {
				if err != nil {
					return err
				}
				fmt.Println(sub)
			}
			return nil
		},
	}
	walkCmd = &cobra.Command{
		Use:   "walk [ref]",
		Short: "Prints every node below ref with its value in ZWRITE format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			root := args[0]
			// The root itself is not a descendant
			if value, err := session.Get(root); err == nil && limit != 0 {
				printValue(os.Stdout, root, value, true)
				limit--
			} else if err != nil && !gtm.IsUndefined(err) {
				return err
			}
			for ref, err := range session.Descendants(root) {
				if err != nil {
					return err
				}
				if limit == 0 {
					break
				}
				value, err := session.Get(ref)
				if err != nil {
					return fmt.Errorf("walk %s: %w", ref, err)
				}
				printValue(os.Stdout, ref, value, true)
				limit--
			}
			return nil
		},
	}
)

// printValue writes value, or ref=value with the value quoted as ZWRITE does it
func printValue(w io.Writer, ref, value string, zwrite bool) {
	if zwrite {
		fmt.Fprintf(w, "%s=%s\n", ref, mref.Quote(value))
		return
	}
	fmt.Fprintln(w, value)
}

func addCommands(root *cobra.Command) {
	getCmd.Flags().Bool("zwrite", false, WrapString("Print ref=value with the value quoted"))
	getCmd.Flags().String("default", "", WrapString("Value to print if the variable is undefined"))
	lockCmd.Flags().Duration("timeout", -1, WrapString("How long to wait for the lock; negative waits until granted"))
	lockCmd.Flags().Duration("hold", 0, WrapString("How long to hold the lock before releasing it"))
	lockCmd.Flags().String("exec", "", WrapString("M code to run while holding the lock"))
	walkCmd.Flags().Int("limit", -1, WrapString("Stop after printing this many nodes; negative prints them all"))

	root.AddCommand(getCmd, setCmd, killCmd, orderCmd, queryCmd, lockCmd, unlockCmd, xecuteCmd, subsCmd, walkCmd)
}
