package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	router "github.com/dkeye/Live/internal/adapters/http"
	"github.com/dkeye/Live/internal/adapters/llm"
	"github.com/dkeye/Live/internal/adapters/rtc"
	"github.com/dkeye/Live/internal/app"
	"github.com/dkeye/Live/internal/app/chat"
	"github.com/dkeye/Live/internal/app/orch"
	"github.com/dkeye/Live/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, flags *pflag.FlagSet) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var policy app.Policy = app.SimplePolicy{}
	if cfg.Live.Backpressure == "drop" {
		policy = app.TolerantPolicy{}
	}
	o := orch.New(orch.Options{
		Authorize:                cfg.Live.Authorize,
		PruneViewersOnDisconnect: cfg.Live.PruneViewersOnDisconnect,
		EndOnOwnerDisconnect:     cfg.Live.EndOnOwnerDisconnect,
		Policy:                   policy,
		Classify:                 rtc.Describe,
	})

	var assistant chat.Assistant = chat.Unavailable{}
	if cfg.Chat.APIKey != "" {
		g, err := llm.NewGemini(ctx, cfg.Chat.APIKey, cfg.Chat.Model)
		if err != nil {
			return err
		}
		assistant = g
	} else {
		log.Warn().Str("module", "main").Msg("chat.api_key not set, chat answers fall back")
	}
	turn := chat.NewTurn(assistant, chat.NewForwarder(o.Notifier, chat.FixedDelay(cfg.Chat.ChunkDelay)))
	turn.Timeout = cfg.Chat.Timeout

	r := router.SetupRouter(ctx, cfg, o, turn)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Live server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
