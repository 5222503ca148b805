// uniqid is a CLI for minting cryptographically random identifiers from a
// pooled secure random source.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ASCII art banner for the CLI
const banner = `
             _       _     _
 _   _ _ __ (_) __ _(_) __| |
| | | | '_ \| |/ _` + "`" + ` | |/ _` + "`" + ` |
| |_| | | | | | (_| | | (_| |
 \__,_|_| |_|_|\__, |_|\__,_|
                  |_|
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Warn("received signal, shutting down",
				"signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	root := a.rootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		a.logger.Error("command failed", "error", err)
		return ExitFailure
	}
	return ExitSuccess
}
