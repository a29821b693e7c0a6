package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/server"
	"github.com/litescript/ls-orrery/internal/state"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the controller headless and publish frames over HTTP and WebSocket",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveKeys = map[string]string{
	"addr":               "serve.addr",
	"push-hz":            "serve.push_hz",
	"max-clients":        "serve.max_clients",
	"max-clients-per-ip": "serve.max_clients_per_ip",
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.Float64("push-hz", 10, "WebSocket frame rate per client")
	f.Int("max-clients", 64, "maximum concurrent WebSocket clients")
	f.Int("max-clients-per-ip", 4, "maximum concurrent WebSocket clients per address")
	bindFlags(f, serveKeys)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	loc, err := rt.cfg.Location()
	if err != nil {
		return err
	}

	st := state.NewManager(state.DefaultConfig())
	ctrl, err := rt.controller(orbit.Observers{st, metrics.Engine{}})
	if err != nil {
		return err
	}

	driver := server.NewDriver(ctrl, st, rt.cfg.FrameInterval(), rt.log.With("driver"))
	srv := server.New(server.Config{
		Addr:            rt.cfg.Serve.Addr,
		PushHz:          rt.cfg.Serve.PushHz,
		MaxClients:      rt.cfg.Serve.MaxClients,
		MaxClientsPerIP: rt.cfg.Serve.MaxClientsPerIP,
		Location:        loc,
	}, st, driver, rt.catalog, rt.log.With("server"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt.log.Info("starting %s on %s", driver, rt.cfg.Serve.Addr)

	errCh := make(chan error, 2)
	go func() { errCh <- driver.Run(ctx) }()
	go func() { errCh <- srv.ListenAndServe() }()

	var runErr error
	select {
	case <-ctx.Done():
		rt.log.Info("shutting down")
	case runErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return runErr
}
