package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/jobfit/internal/server"
	"github.com/jonathan/jobfit/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the engine operations and the bullet library as JSON endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// rateLimitConfig maps the rate_limit config section onto the limiter
func rateLimitConfig() *ratelimit.Config {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	rl := ratelimit.DefaultConfig()
	rl.DefaultLimit = cfg.RateLimit.Limit
	rl.DefaultWindow = cfg.RateLimit.Window
	rl.Whitelist = ratelimit.ParseIPList(cfg.RateLimit.Whitelist)
	rl.Blacklist = ratelimit.ParseIPList(cfg.RateLimit.Blacklist)
	return rl
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}
	srv, err := server.New(server.Options{
		Port:      port,
		Engine:    rt.engine,
		Logger:    logger,
		Metrics:   rt.metrics,
		Gatherer:  rt.registry,
		RateLimit: rateLimitConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

