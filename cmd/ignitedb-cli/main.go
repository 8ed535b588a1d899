// Command ignitedb-cli is a small REPL/CLI exercising ignitedb end to end:
// get, set, setex, del, scan, stats, plus an interactive shell started by
// the repl subcommand.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/ignitedb/pkg/ignitedb"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

var dirPath string

func main() {
	root := &cobra.Command{
		Use:   "ignitedb-cli",
		Short: "Inspect and operate an ignitedb database directory",
	}
	root.PersistentFlags().StringVar(&dirPath, "dir", options.DefaultDirPath, "database directory")

	root.AddCommand(
		newGetCmd(),
		newSetCmd(),
		newSetEXCmd(),
		newDelCmd(),
		newScanCmd(),
		newStatsCmd(),
		newReplCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*ignitedb.DB, error) {
	return ignitedb.Open("ignitedb-cli", options.WithDirPath(dirPath))
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			value, err := db.Get([]byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store value under key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return db.Put([]byte(args[0]), []byte(args[1]))
		},
	}
}

func newSetEXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setex <key> <value> <ttl>",
		Short: "Store value under key with a time-to-live (e.g. 30s, 5m)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, err := time.ParseDuration(args[2])
			if err != nil {
				return fmt.Errorf("invalid ttl %q: %w", args[2], err)
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return db.SetEX([]byte(args[0]), []byte(args[1]), ttl)
		},
	}
}

func newDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <key>",
		Short: "Remove key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return db.Delete([]byte(args[0]))
		},
	}
}

func newScanCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List live keys, optionally filtered by prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			return db.Fold(func(key, value []byte) bool {
				if prefix == "" || len(key) >= len(prefix) && string(key[:len(prefix)]) == prefix {
					fmt.Printf("%s = %s\n", key, value)
				}
				return true
			})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list keys with this prefix")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print engine statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			stat := db.Stat()
			fmt.Printf("active_segment_id=%d segments=%d keys=%d\n",
				stat.ActiveSegmentID, stat.SegmentCount, stat.KeyCount)
			return nil
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell against the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return runRepl(db)
		},
	}
}

