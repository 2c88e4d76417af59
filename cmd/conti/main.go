package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conti/internal/amqp"
	"conti/internal/cli"
	apphttp "conti/internal/http"
	"conti/internal/log"
	"conti/internal/prefs"
	"conti/internal/state"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenPrefs(logger, cfg.PrefsDBPath)
	defer store.Close()

	themes, err := prefs.NewThemeManager(context.Background(), store, cfg.SystemTheme)
	if err != nil {
		logger.Error("Failed to initialize theme manager", log.FieldError, err)
		os.Exit(1)
	}

	manager := state.New(state.SeedFromFiles(cfg.SeedDir))
	logger.Info("State manager seeded",
		"partners", len(manager.Partners()),
		"categories", len(manager.Categories()),
		"expenses", len(manager.Expenses()))

	// The broker is optional; without it mutations stay local and the
	// mirror worker sees nothing.
	var broker *amqp.Client
	if cfg.AMQPURL != "" {
		broker, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", log.FieldError, err, "url", cfg.AMQPURL)
			os.Exit(1)
		}
		defer broker.Close()
		manager.Subscribe(amqp.NewPublisher(broker, manager))
		logger.Info("Mutation publisher attached", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, manager, themes)
	if err != nil {
		logger.Error("Failed to build server", log.FieldError, err)
		os.Exit(1)
	}

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting conti server",
		"port", cfg.Port,
		log.FieldTheme, themes.Current(),
		"amqp_enabled", broker != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
