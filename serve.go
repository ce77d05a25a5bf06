package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cameroncuttingedge/titration_four/api"
	"github.com/cameroncuttingedge/titration_four/events"
	"github.com/cameroncuttingedge/titration_four/game"
	"github.com/cameroncuttingedge/titration_four/utils"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one local session over HTTP and websocket",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: ADDR or 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	set, err := loadQuestions(cfg)
	if err != nil {
		return err
	}

	bus := events.NewBus(cfg.EventBuffer)
	session := game.NewSession(game.Options{
		ID:        utils.GenerateUUIDString(),
		Questions: set,
		Weights:   cfg.Eval.Weights(),
		Notifier:  bus,
	})
	server := api.NewServer(session, cfg.AllowedOrigins)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		server.Hub().Run(gctx, bus.Events())
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("sessionID", session.ID).Msg("Starting App")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		server.Hub().Close()
		bus.Close()
		return err
	})
	return g.Wait()
}
