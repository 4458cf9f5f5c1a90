package perftests

import (
	"context"
	"testing"

	bidding "souq-market/internal/biddingService"
	"souq-market/internal/lifecycle"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
)

const (
	benchSeller     int64 = 1
	benchStartPrice int64 = 100000
)

// setupAuctions creates numAuctions 72 hour auctions owned by benchSeller
func setupAuctions(tb testing.TB, numAuctions int) ([]int64, *repository.MemoryRepo, *bidding.BiddingService) {
	tb.Helper()

	repo := repository.NewMemoryRepo()
	repo.AddUser(model.User{ID: benchSeller, Name: "bench seller", SellerName: "Bench Souq"})
	manager := lifecycle.NewManager(repo, repo)

	ids := make([]int64, 0, numAuctions)
	for i := 0; i < numAuctions; i++ {
		productID := int64(i + 1)
		repo.AddProduct(model.Product{ID: productID, SellerID: benchSeller, Name: "bench product", Price: benchStartPrice})
		a, err := manager.CreateAuction(context.Background(), lifecycle.CreateAuctionInput{
			ProductID:     productID,
			SellerID:      benchSeller,
			StartPrice:    benchStartPrice,
			DurationHours: 72,
		})
		if err != nil {
			tb.Fatalf("failed to create auction: %v", err)
		}
		ids = append(ids, a.ID)
	}
	return ids, repo, bidding.NewBiddingService(repo)
}
