package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcli "oss.nandlabs.io/golly/cli"

	"github.com/HariniKartheeswaran/queuectl/dashboard"
)

func newDashboardCommand() *gcli.Command {
	cmd := gcli.NewCommand("dashboard", "Serve the read-only web dashboard", version, runDashboard)
	cmd.Flags = []*gcli.Flag{
		{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on", Default: "8080"},
	}
	return cmd
}

func runDashboard(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}

	port := "8080"
	if v, ok := ctx.GetFlag("port"); ok && v != "" {
		port = v
	}

	addr := ":" + port
	srv := dashboard.New(rt.manager, addr)

	fmt.Printf("Dashboard listening on http://localhost:%s\n", port)
	fmt.Println("Press Ctrl+C to stop...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-sig:
		fmt.Println("\nShutting down dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
