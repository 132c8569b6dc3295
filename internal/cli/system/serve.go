package system

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/instance"
	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/web"
)

type ServeCmd struct {
	Addr     string `help:"Address to listen on." default:"${addr}"`
	NoBackup bool   `help:"Skip the startup backup." name:"no-backup"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.serve(sigCtx, ctx, nil)
}

// serve runs until runCtx is cancelled. ready receives the bound address.
func (c *ServeCmd) serve(runCtx context.Context, ctx *cli.Context, ready func(net.Addr)) error {
	lock, err := instance.Acquire(ctx.DataDir, c.Addr)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release serve lock", "error", err)
		}
	}()

	if !c.NoBackup {
		ctx.PerformAutomaticBackup(runCtx)
	}

	srv, err := web.NewServer(web.Options{
		Meds:  ctx.Meds,
		Log:   ctx.Log,
		Store: ctx.Store,
	})
	if err != nil {
		return err
	}

	return srv.Run(runCtx, c.Addr, func(addr net.Addr) {
		fmt.Fprintf(ctx.Out, "MediMate is running at http://%s (Ctrl+C to stop)\n", addr)
		if ready != nil {
			ready(addr)
		}
	})
}
