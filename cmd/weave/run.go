package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func runCmd(a *app) *cobra.Command {
	var (
		rawURL   string
		addr     string
		devtools bool
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [component]",
		Short: "Mount a component and keep it running",
		Long: `Mount a component on an in-memory document and run its engine
until interrupted.

With the inspector enabled, the live document is served over HTTP:

  GET  /tree         current host tree as HTML
  GET  /components   registered component instances
  POST /dispatch     fire an event at a node
  GET  /metrics      Prometheus metrics
  GET  /ws           render pass stream

Examples:
  weave run
  weave run Counter --url '/?count=3' --devtools
  weave run Home --addr 127.0.0.1:9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("devtools") {
				a.cfg.Devtools.Enabled = devtools
			}
			if addr != "" {
				a.cfg.Devtools.Addr = addr
				a.cfg.Devtools.Enabled = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return a.run(ctx, cmd, a.rootName(args), rawURL)
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "/", "Initial host location, including query parameters")
	cmd.Flags().StringVar(&addr, "addr", "", "Inspector listen address (enables the inspector)")
	cmd.Flags().BoolVar(&devtools, "devtools", false, "Serve the inspector (default from weave.yaml)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (default: run until interrupted)")

	return cmd
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, name, rawURL string) error {
	out := cmd.OutOrStdout()

	s, err := a.newSession(name, rawURL)
	if err != nil {
		return err
	}
	defer s.close()

	if a.cfg.Devtools.Enabled {
		ln, err := net.Listen("tcp", a.cfg.Devtools.Addr)
		if err != nil {
			return fmt.Errorf("inspector: %w", err)
		}
		srv := &http.Server{
			Handler:           a.inspector(s).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				a.logger.Error("inspector stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		success(out, "Inspector listening on http://%s", ln.Addr())
	}

	success(out, "Running %s at %s", name, rawURL)
	if err := s.engine.Run(ctx); err != nil {
		return err
	}
	info(out, "Stopped after %d passes", s.engine.Passes())
	return nil
}
