package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrNoCommand      = errors.New("no command specified")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, args, env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run dispatches args[1] to a command.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ErrNoCommand
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "build":
		return runBuild(ctx, rest, env)
	case "config":
		return runConfig(rest, env)
	case "completion":
		return runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "postbuild %s\n", Version)
		return nil
	case "help", "-h", "--help":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	if i := slices.Index(args, "--"); i >= 0 {
		args = args[:i]
	}
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
