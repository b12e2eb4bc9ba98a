package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/footprintgen/internal/cli"
)

// main is the entrypoint for the footprintgen application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code. Error
// messages go to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) int {
	err := cli.Execute(ctx, outW, args)
	if err == nil {
		return cli.ExitOK
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(errW, err)
	return cli.ExitFailure
}
