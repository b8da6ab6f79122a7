package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/askiada/go-seqlength/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.NewRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Diagnostic(err))
		os.Exit(1)
	}
}
