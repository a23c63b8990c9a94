// Command schemaprompt builds a JSON value interactively from a JSON Schema.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, s streams) int {
	rest, pairs, err := extractSetArgs(args)
	if err != nil {
		return exitCode(err, s.err)
	}
	cmd := newRootCmd(s, pairs)
	cmd.SetArgs(rest)
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	return exitCode(cmd.ExecuteContext(ctx), s.err)
}
