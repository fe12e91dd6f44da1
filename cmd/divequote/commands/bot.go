package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"divequote/internal/bot"
	"divequote/internal/metrics"
	storageredis "divequote/internal/storage/redis"
	"divequote/internal/wizard"
	"divequote/pkg/api"
	"divequote/pkg/redis"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func botCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram quote wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			zapLogger := app.logger

			if err := cfg.ValidateBot(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			engine, err := buildEngine(ctx, app, "")
			if err != nil {
				return err
			}
			zapLogger.Info("Pricing engine ready",
				zap.Int("services", len(engine.Catalog().Services())),
				zap.String("composition", string(engine.Composition())))

			redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SessionTTL)
			defer redisClient.Close()
			if err := redisClient.WaitReady(ctx, zapLogger, time.Minute); err != nil {
				return err
			}

			checkout := api.NewClient(cfg.Checkout.BaseURL, cfg.Checkout.APIKey, cfg.Checkout.Timeout, zapLogger)
			if !checkout.Configured() {
				zapLogger.Warn("Checkout endpoint not configured, booking is disabled")
			}

			botAPI, err := bot.NewBotAPI(cfg.Telegram.Token, cfg.Telegram.Debug, zapLogger)
			if err != nil {
				return err
			}

			tgBot := bot.New(
				botAPI,
				wizard.New(engine, zapLogger.Named("wizard")),
				storageredis.NewSessionStorage(redisClient),
				checkout,
				zapLogger,
			)

			stopMetrics := serveMetrics(cfg.Metrics.Addr, zapLogger)
			defer stopMetrics()

			if err := tgBot.Start(ctx); err != nil {
				return err
			}

			zapLogger.Info("Bot shutdown gracefully")
			return nil
		},
	}
}

// serveMetrics exposes /metrics on addr until the returned func is called.
// An empty addr disables the endpoint.
func serveMetrics(addr string, logger *zap.Logger) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
