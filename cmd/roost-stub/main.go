package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/roost/internal/stubapi"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "", "listen address (overrides ROOST_STUB_ADDR)")
	flag.Parse()

	cfg, err := stubapi.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "roost-stub: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := stubapi.New(cfg)
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(cfg.Addr) }()
	slog.Info("stub API listening", "addr", cfg.Addr)

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "roost-stub: %v\n", err)
			return 1
		}
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "roost-stub: shutdown: %v\n", err)
			return 1
		}
	}
	return 0
}
