// Command voicevoxctl checks, queries and serves a VOICEVOX core library.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"voicevoxcore/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx)
	stop()
	os.Exit(code)
}
