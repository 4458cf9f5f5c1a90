// Command sweeper closes every auction whose end time has passed and exits.
// Run it from cron when the API servers have SWEEP_INTERVAL=0.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"souq-market/internal/app"
	"souq-market/internal/config"
	"souq-market/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown LOG_LEVEL, keeping info", map[string]any{"log_level": cfg.LogLevel})
	}
	if cfg.Store != config.StorePostgres {
		utils.Fatal("sweeper needs a shared store", map[string]any{"store": cfg.Store})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, nil)
	if err != nil {
		utils.Fatal("failed to initialize application", map[string]any{"error": err.Error()})
	}

	closed, err := a.Lifecycle.SweepExpired(ctx)
	a.Close()
	if err != nil {
		utils.Error("sweep finished with errors", map[string]any{"closed": closed, "error": err.Error()})
		os.Exit(1)
	}
	utils.Info("sweep finished", map[string]any{"closed": closed})
}
