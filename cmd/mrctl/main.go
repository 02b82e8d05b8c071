// Command mrctl is the debug CLI for movierec.
//
// Usage:
//
//	mrctl                       Show help
//	mrctl search <query>        Call /search and print the titles
//	mrctl recommend <movie>     Call /recommend and print the matches
//	mrctl history               Show recent lookups
//	mrctl events                JSONL event log viewer
//	mrctl serve-fake            Run an in-memory backend for local testing
package main

import (
	"fmt"
	"os"
)

const usage = `mrctl - movierec debug CLI

Usage:
  mrctl <command> [flags]

Commands:
  search      Call /search and print the suggested titles
  recommend   Call /recommend and print recommendations with match scores
  history     Show or clear the local lookup history
  events      JSONL event log viewer
  serve-fake  Serve /search and /recommend from a built-in catalog

Environment:
  MOVIEREC_SERVER_URL  Service base URL (default: http://localhost:5000)
  MOVIEREC_DATA_DIR    Data directory (default: ~/.movierec)

Run 'mrctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "recommend":
		runRecommend()
	case "history":
		runHistory()
	case "events":
		runEvents()
	case "serve-fake":
		runServeFake()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "mrctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
