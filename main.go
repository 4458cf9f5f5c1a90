package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"souq-market/internal/app"
	"souq-market/internal/config"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
	"souq-market/internal/server"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown LOG_LEVEL, keeping info", map[string]any{"log_level": cfg.LogLevel})
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, prepopulateCatalog)
	if err != nil {
		utils.Fatal("failed to initialize application", map[string]any{"error": err.Error()})
	}
	defer a.Close()

	if cfg.SweepInterval > 0 {
		go a.RunSweeper(ctx, cfg.SweepInterval)
	}

	router := server.SetupRouter(a.Services(), utils.NewJWTService(cfg.JWTSecret))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": cfg.Addr(), "store": cfg.Store})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server stopped", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
	utils.Info("server stopped", nil)
}

// prepopulateCatalog adds sample sellers, buyers and products to the in-memory repo
func prepopulateCatalog(repo *repository.MemoryRepo) {
	users := []model.User{
		{ID: 1, Name: "Ali Hassan", SellerName: "Baghdad Antiques"},
		{ID: 2, Name: "Zainab Kareem"},
		{ID: 3, Name: "Omar Saleh"},
	}
	products := []model.Product{
		{ID: 1, SellerID: 1, Name: "Brass coffee dallah", Price: 100000, Status: "available"},
		{ID: 2, SellerID: 1, Name: "Handwoven rug", Price: 450000, Status: "available"},
		{ID: 3, SellerID: 1, Name: "Silver prayer beads", Price: 75000, Status: "available"},
	}

	for _, u := range users {
		repo.AddUser(u)
	}
	for _, p := range products {
		repo.AddProduct(p)
	}
}
