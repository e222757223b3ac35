package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/jobtrack/jobtrack-go/internal/config"
	"github.com/jobtrack/jobtrack-go/internal/platform/logging"
	"github.com/jobtrack/jobtrack-go/internal/platform/version"
)

const usage = `Usage: jobtrack <command> [flags] [args]

Commands:
  login     [-username name] [-password pw]        log in
  signup    [-username name] [-password pw] [-confirm pw]
                                                  create an account and log in
  logout                                          forget the stored session
  list                                            show the dashboard (default)
  summary                                         show the status counters
  add       -company c -role r [-date YYYY-MM-DD] [-status s]
                                                  add an application
  status    <id> <status>                         change an application's status
  delete    <id>                                  delete an application
  whoami                                          show the logged-in user
  version                                         show build information

Statuses: Applied, Interview, Offer, Rejected, "No Response".
Configuration is read from the environment and an optional .env file.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, clockwork.NewRealClock())
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, clock clockwork.Clock) int {
	if len(args) == 0 {
		args = []string{"list"}
	}
	name, rest := args[0], args[1:]

	switch name {
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	case "version":
		fmt.Fprintln(stdout, version.Get())
		return 0
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "jobtrack: unknown command %q\n\n%s", name, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "jobtrack: %v\n", err)
		return 1
	}
	logging.InitLogger(stderr, cfg.LogLevel, cfg.LogFormat)

	a, err := newApp(ctx, cfg, stdin, stdout, stderr, clock)
	if err != nil {
		fmt.Fprintf(stderr, "jobtrack: %v\n", err)
		return 1
	}
	defer a.close()

	if err := cmd(ctx, a, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		slog.Debug("command failed", "command", name, "error", err)
		fmt.Fprintf(stderr, "jobtrack: %v\n", err)

		var ue *usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}
