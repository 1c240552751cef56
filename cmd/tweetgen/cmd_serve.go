package main

import (
	"context"
	"os/signal"
	"syscall"

	"tweetgen/internal/logging"
	"tweetgen/internal/resolver"
	"tweetgen/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addrFlag string

// serveCmd runs the tweet API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tweet API for remote-mode clients",
	Long: `Serves POST /api/v1/tweet, GET /api/v1/categories and GET /healthz.

Tweets are always picked locally from the catalog, whatever --mode says.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logging.Get(logging.CategoryServer)

	sc := server.Config{
		Addr:           cfg.Server.Addr,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ReadTimeout:    cfg.GetServerReadTimeout(),
		WriteTimeout:   cfg.GetServerWriteTimeout(),
	}
	if addrFlag != "" {
		sc.Addr = addrFlag
	}

	srv, err := server.New(sc, cat, resolver.NewLocal(cat), server.WithLogger(log))
	if err != nil {
		return err
	}

	log.Info("Starting tweet API", zap.String("addr", sc.Addr), zap.Int("categories", cat.Len()))
	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info("Shut down", zap.NamedError("cause", context.Cause(ctx)))
	return nil
}
