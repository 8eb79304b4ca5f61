// IFPlan: productive, financial and environmental indicators for pasture
// based dairy farms.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ifplan/ifplan/internal/cli"
	"github.com/ifplan/ifplan/internal/repository"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		// Force exit if shutdown hangs.
		time.AfterFunc(10*time.Second, func() {
			fmt.Fprintln(os.Stderr, "ifplan: forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	version := Version
	if BuildTime != "unknown" {
		version += " (built " + BuildTime + ")"
	}

	if err := cli.Run(ctx, version, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = errors.New("simulation not found")
		}
		fmt.Fprintln(os.Stderr, "ifplan:", err)
		os.Exit(1)
	}
}
