package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"trek/internal/config"
	"trek/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitUsage    = 2
	exitRejected = 3
)

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: trek [flags] <command> [args]\n\nCommands:\n")
		for _, c := range commands {
			fmt.Fprintf(out, "  %-28s %s\n", c.usage, c.help)
		}
		fmt.Fprintf(out, "\nFlags:\n")
		fs.PrintDefaults()
	}
}

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	// os.Exit skips deferred calls, so the log file is closed here
	log.Close()
	os.Exit(code)
}

// run is the whole program short of exiting; it returns the exit code
func run(args []string, stdout, stderr io.Writer) (code int) {
	// Set up global panic handler first
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(stderr, "trek crashed. See the debug log for details.\n")
			code = exitError
		}
	}()

	fs := flag.NewFlagSet("trek", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		envFile     = fs.String("env", "", "Read settings from this .env file instead of ./.env")
		jsonOut     = fs.Bool("json", false, "Print JSON even on a terminal")
		showVersion = fs.Bool("version", false, "Print the version and exit")
	)
	fs.Usage = usage(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "trek %s (%s, %s)\n", version, commit, date)
		return exitOK
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if err := log.SetLevel(cfg.Logging.Level); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if err := log.SetFileOutput(cfg.Logging.File); err != nil {
		fmt.Fprintf(stderr, "Warning: Could not configure debug logging to file: %v\n", err)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	app := &App{Config: cfg, Out: stdout, JSON: *jsonOut}
	if f, ok := stdout.(*os.File); !ok || !isTerminal(f) {
		app.JSON = true
	}

	err = app.Run(fs.Args())
	var (
		rejected *RejectedError
		usageErr *UsageError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &rejected):
		return exitRejected
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	default:
		log.Error("command failed", "args", fs.Args(), "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}
