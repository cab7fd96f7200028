package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/brainrots/internal/config"
	"github.com/tomz197/brainrots/internal/logging"
	"github.com/tomz197/brainrots/internal/loop/client"
	"github.com/tomz197/brainrots/internal/object"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Logs share the terminal with the game unless stderr is redirected.
	log := zap.NewNop()
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		if log, err = logging.New(cfg.Logging); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer log.Sync()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	opts := client.ClientOptions{
		Bounds:    object.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		TargetFPS: cfg.Loop.TargetFPS,
		Logger:    log,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}

	c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, opts)
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
