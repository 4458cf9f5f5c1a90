package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	bidding "souq-market/internal/biddingService"
	"souq-market/internal/config"
	"souq-market/internal/db"
	"souq-market/internal/lifecycle"
	"souq-market/internal/messaging"
	"souq-market/internal/query"
	"souq-market/internal/repository"
	"souq-market/internal/server"
	"souq-market/internal/settlement"
	"souq-market/utils"
)

// Store is everything the services need from persistence
type Store interface {
	repository.AuctionDB
	repository.Catalog
	repository.MessageDB
}

// App is the wired object graph shared by the API server and the sweeper
type App struct {
	Store     Store
	Lifecycle *lifecycle.Manager
	Bidding   *bidding.BiddingService
	Query     *query.AuctionQuery
	Messaging *messaging.Service

	closers []func()
}

// Build opens the configured store and settlement journals and wires the services.
// seed is called with the memory repo when STORE=memory.
func Build(ctx context.Context, cfg *config.Config, seed func(*repository.MemoryRepo)) (*App, error) {
	a := &App{}

	switch cfg.Store {
	case config.StorePostgres:
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)

		repo := repository.NewPostgresRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Store = repo
	default:
		repo := repository.NewMemoryRepo()
		if seed != nil {
			seed(repo)
		}
		a.Store = repo
	}

	calc, err := settlement.NewCalculator(cfg.CommissionRate)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	journals := []settlement.Journal{settlement.LogJournal{}}
	if cfg.MongoURI != "" {
		client, err := settlement.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		a.closers = append(a.closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				utils.Warn("failed to disconnect from MongoDB", map[string]any{"error": err.Error()})
			}
		})
		journal := settlement.NewMongoJournal(client, cfg.MongoDBName)
		if err := journal.EnsureIndexes(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		journals = append(journals, journal)
		utils.Info("settlements journaled to MongoDB", map[string]any{"database": cfg.MongoDBName})
	}

	a.Lifecycle = lifecycle.NewManager(a.Store, a.Store,
		lifecycle.WithSettlementHook(settlement.NewHook(calc, journals...)))
	a.Bidding = bidding.NewBiddingService(a.Store)
	a.Query = query.NewAuctionQuery(a.Store, a.Store, a.Lifecycle)
	a.Messaging = messaging.NewService(a.Store, a.Store)
	return a, nil
}

// Services exposes the wired services to the HTTP layer
func (a *App) Services() server.Services {
	return server.Services{
		Bidding:   a.Bidding,
		Lifecycle: a.Lifecycle,
		Query:     a.Query,
		Messaging: a.Messaging,
	}
}

// RunSweeper closes expired auctions every interval until ctx is done
func (a *App) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep and logs its outcome
func (a *App) SweepOnce(ctx context.Context) int {
	closed, err := a.Lifecycle.SweepExpired(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		utils.Error("sweep failed", map[string]any{"closed": closed, "error": err.Error()})
	}
	if closed > 0 {
		utils.Info("expired auctions closed", map[string]any{"closed": closed})
	}
	return closed
}

// Close releases the store and journal connections in reverse order of opening
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
