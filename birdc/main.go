// =============================================================================
// main.go - birdc Entry Point
// =============================================================================
//
// birdc is the interactive control client for the BIRD routing daemon. It
// connects to the daemon's control socket, sends commands typed at the
// prompt (or given on the command line) and prints the replies, pausing
// after every screenful.
//
// Usage:
//
//	birdc                              Interactive session on /run/bird/bird.ctl
//	birdc -s /tmp/bird.ctl             Use another control socket
//	birdc -r                           Restricted session (read-only commands)
//	birdc show protocols               Run one command and exit
//	birdc -l                           Use bird.ctl in the current directory
//	birdc --show-config                Print the effective configuration
//
// In batch mode the exit status is 0 when the daemon's last reply code is
// below 8000 and 1 otherwise.
//
// =============================================================================

// GO CONCEPT: Packages
// --------------------
// The special package name "main" tells the Go compiler this is an
// executable program. The wire protocol lives in a separate library
// package (birdprotocol) that knows nothing about terminals, so it can be
// tested and reused on its own.
//
// Compare with Python: a console-script entry point calling into an
// importable package.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"pkt.systems/pslog"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	// version is the client version reported by --version.
	version = "2.15.0"

	// appName is the program name.
	appName = "birdc"
)

// =============================================================================
// Command-Line Arguments
// =============================================================================

// arguments holds the parsed command-line arguments.
type arguments struct {
	// socketPath is the control socket given with -s. Empty means "use
	// the configured default".
	socketPath string

	// verbose counts -v flags.
	verbose int

	// restricted requests a restricted session.
	restricted bool

	// local selects the socket in the current directory.
	local bool

	// configPath is the config file given with --config.
	configPath string

	// showConfig prints the effective configuration and exits.
	showConfig bool
}

// bindFlags registers the client's flags on fs.
func bindFlags(fs *pflag.FlagSet, args *arguments) {
	fs.StringVarP(&args.socketPath, "socket", "s", "", "control socket path (default "+defaultConfig().Socket+")")
	fs.CountVarP(&args.verbose, "verbose", "v", "show reply codes; repeat for protocol debug logging")
	fs.BoolVarP(&args.restricted, "restricted", "r", false, "restrict the session to read-only commands")
	fs.BoolVarP(&args.local, "local", "l", false, "use the control socket in the current directory")
	fs.StringVar(&args.configPath, "config", "", "path to config file")
	fs.BoolVar(&args.showConfig, "show-config", false, "print the effective configuration and exit")
}

// GO CONCEPT: Exit Codes Without os.Exit
// --------------------------------------
// os.Exit ends the process immediately and skips deferred calls. Code
// deeper in the program therefore returns an *ExitError carrying the
// status, and only main() turns it into a real exit. This also makes the
// whole client testable: tests call execute() and look at the returned
// code.
//
// Compare with Python: raising SystemExit(code) and catching it at the top.

// newRootCmd builds the root command. status receives the exit status of
// a client run.
func newRootCmd(status *int) *cobra.Command {
	var args arguments

	root := &cobra.Command{
		Use:           appName + " [flags] [command ...]",
		Short:         "Control client for the BIRD routing daemon",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, rest []string) error {
			cfg, err := loadConfig(args.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if args.showConfig {
				return writeConfig(cmd.OutOrStdout(), cfg)
			}
			explicit := cmd.Flags().Changed("socket")
			*status = runClient(cfg, args.local, explicit, rest, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}

	// Everything after the first command word belongs to the command.
	root.Flags().SetInterspersed(false)
	bindFlags(root.Flags(), &args)
	return root
}

// execute runs the client with the given arguments (without the program
// name) and returns the process exit status.
func execute(argv []string, stdout, stderr io.Writer) int {
	status := 0
	root := newRootCmd(&status)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		printError(stderr, err.Error())
		return 1
	}
	return status
}

// printError prints an error message to stderr.
func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}

// =============================================================================
// Logging
// =============================================================================

// newLogger builds the diagnostic logger. Debug output is enabled from
// -vv on; PSLOG_* environment variables can override the defaults.
func newLogger(w io.Writer, verbose int) pslog.Logger {
	level := pslog.InfoLevel
	if verbose >= 2 {
		level = pslog.DebugLevel
	}
	return pslog.LoggerFromEnv(
		pslog.WithEnvWriter(w),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, MinLevel: level}),
	).With("app", appName)
}

// =============================================================================
// Client
// =============================================================================

// runClient connects to the daemon and runs a session until it ends.
func runClient(cfg config, local, explicitSocket bool, command []string, stdout, stderr io.Writer) int {
	log := newLogger(stderr, cfg.Verbose)

	path := resolveSocketPath(cfg.Socket, explicitSocket, local)
	conn, err := connect(path, log)
	if err != nil {
		printError(stderr, err.Error())
		if hint := connectHint(path, err); hint != "" {
			fmt.Fprintln(stderr, hint)
		}
		return 1
	}
	defer conn.Close()

	tree := newCommandTree(birdCommands)
	input := newTerminalInput(HistoryOptions{File: cfg.History.File, Limit: cfg.History.Limit}, tree)
	render := newRenderer(stdout, cfg.Color, isTerminalWriter(stdout))
	pager := NewPager(termKeys{f: os.Stdin}, stdout, log)

	opts := SessionOptions{
		Interactive: isTerminal(os.Stdin),
		Restricted:  cfg.Restricted,
		Verbose:     cfg.Verbose > 0,
		InitCommand: strings.Join(command, " "),
		Once:        len(command) > 0,
	}
	session := NewSession(opts, conn, tree, input, pager, render, log)

	cleanup := func() {
		input.Close()
		conn.Close()
	}
	stop := setupSignalHandler(cleanup)
	defer stop()

	err = NewEventLoop(session, conn, input, log).Run()
	input.Close()

	var exit *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.ExitCode()
	}
	printError(stderr, err.Error())
	return 1
}

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// =============================================================================
// Signal Handling
// =============================================================================

// setupSignalHandler runs cleanup and exits when SIGINT or SIGTERM
// arrives. The exit status is 128 plus the signal number. The returned
// function uninstalls the handler.
func setupSignalHandler(cleanup func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Println()
			cleanup()
			code := 1
			if s, ok := sig.(syscall.Signal); ok {
				code = 128 + int(s)
			}
			os.Exit(code)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
