// Package appshell is the process boundary of pahmm: signal handling, argv,
// and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// exitCanceled matches app.ExitCanceled; appshell sits below app.
const exitCanceled = 130

// Main runs run with a context canceled on SIGINT or SIGTERM and exits with
// its code. No arguments means help. A signal during a long --wait for HMM
// output cancels the wait and all running alignments.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Interrupted after the tables were written: still report it.
	if ctx.Err() != nil && code == 0 {
		code = exitCanceled
	}

	stop()
	os.Exit(code)
}
