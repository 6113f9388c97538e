// Command stride-log is a tool for viewing and analyzing session event
// log files.
//
// Event logs are created by running stride-sim with the -event-log flag.
//
// Usage:
//
//	stride-log <command> [flags] <file.cbor>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	stride-log view events.cbor
//
//	# View only anomaly events
//	stride-log view -category anomaly events.cbor
//
//	# Export to JSONL
//	stride-log export -format jsonl events.cbor
//
//	# Filter by session and save to a new file
//	stride-log filter -session 1b9d6bcd -o filtered.cbor events.cbor
//
//	# Show statistics
//	stride-log stats events.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/openstride/stride-go/cmd/stride-log/commands"
)

const usage = `stride-log - Session Event Log Analyzer

Usage:
  stride-log <command> [flags] <file.cbor>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "stride-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// parseFilterFlags builds a log filter from the common flags.
func filterFlags(fs *flag.FlagSet) (session, category *string) {
	session = fs.String("session", "", "Filter by session ID (exact match)")
	category = fs.String("category", "", "Filter by category (state, anomaly, split, metrics, record)")
	return session, category
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `stride-log view - View log file in human-readable format

Usage:
  stride-log view [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}
	session, category := filterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFile(fs)

	filter, err := commands.BuildFilter(*session, *category)
	if err != nil {
		fatal(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `stride-log export - Export log file to JSONL or CSV

Usage:
  stride-log export [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}
	format := fs.String("format", "jsonl", "Output format: jsonl, csv")
	output := fs.String("o", "", "Output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFile(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `stride-log filter - Filter log file and write to new file

Usage:
  stride-log filter [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}
	session, category := filterFlags(fs)
	output := fs.String("o", "", "Output file (required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFile(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o output file required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(*session, *category)
	if err != nil {
		fatal(err)
	}
	count, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `stride-log stats - Show statistics about the log file

Usage:
  stride-log stats <file.cbor>
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFile(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatal(err)
	}
}

func requireFile(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
