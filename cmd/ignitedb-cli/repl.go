package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/iamNilotpal/ignitedb/pkg/ignitedb"
)

// runRepl starts an interactive shell over db, accepting get/set/del/scan/
// stats commands until the user exits (Ctrl-D or "exit").
func runRepl(db *ignitedb.DB) error {
	rl, err := readline.New("ignitedb> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return err
		}

		if err := runReplLine(db, line); err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Println("error:", err)
		}
	}
}

func runReplLine(db *ignitedb.DB, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return io.EOF

	case "get":
		if len(fields) != 2 {
			return fmt.Errorf("usage: get <key>")
		}
		value, err := db.Get([]byte(fields[1]))
		if err != nil {
			return err
		}
		fmt.Println(string(value))

	case "set":
		if len(fields) != 3 {
			return fmt.Errorf("usage: set <key> <value>")
		}
		return db.Put([]byte(fields[1]), []byte(fields[2]))

	case "del":
		if len(fields) != 2 {
			return fmt.Errorf("usage: del <key>")
		}
		return db.Delete([]byte(fields[1]))

	case "scan":
		return db.Fold(func(key, value []byte) bool {
			fmt.Printf("%s = %s\n", key, value)
			return true
		})

	case "stats":
		stat := db.Stat()
		fmt.Printf("active_segment_id=%d segments=%d keys=%d\n",
			stat.ActiveSegmentID, stat.SegmentCount, stat.KeyCount)

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}

	return nil
}
