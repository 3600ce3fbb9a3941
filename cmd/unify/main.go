// Package main provides the CLI entrypoint for unify.
//
// unify converts JSON documents between two representations of one record:
//   - Nested: "user" and "metadata" sub-objects, structured items
//   - Flattened: prefixed keys (user_id, metadata_version), "id:title:active" items
//
// Both are converted to the unified shape, the nested one with
// metadata.format set to "unified".
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
)

const usage = `unify - convert nested and flattened JSON documents to the unified format

Usage:
  unify <command> [flags]

Commands:
  explore      print the nested and flattened documents and compare their structure
  convert      convert both documents and check the results against the target document
  batch        convert every document in the data directory
  watch        convert documents in the data directory whenever they change
  init-config  write the default configuration to a file (default unify.yaml)

Run "unify <command> -h" for the flags of a command.
`

type commandFunc func(ctx context.Context, a *app) error

var commands = map[string]commandFunc{
	"explore":     runExplore,
	"convert":     runConvert,
	"batch":       runBatch,
	"watch":       runWatch,
	"init-config": runInitConfig,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	name, args := args[0], args[1:]

	switch name {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", name, usage)
		return 2
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	a, err := newApp(fs, f, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "unify: %v\n", err)
		return 1
	}
	defer a.close()

	if err := cmd(ctx, a); err != nil {
		a.logger.Error("command failed", slog.String("command", name), slog.Any("error", err))
		return 1
	}

	return 0
}
