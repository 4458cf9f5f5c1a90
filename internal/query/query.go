package query

import (
	"context"
	"fmt"
	"time"

	bidding "souq-market/internal/biddingService"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
	"souq-market/utils"
)

// DefaultTopBidders is the leaderboard size shown on the auction page
const DefaultTopBidders = 3

// Closer ends auctions whose time is up. Implemented by lifecycle.Manager.
type Closer interface {
	CloseIfEligible(ctx context.Context, auction model.Auction, force bool) (model.Auction, bool, error)
}

// BidHistoryEntry is the public view of a bid: no bidder identity
type BidHistoryEntry struct {
	Amount int64     `json:"amount"`
	Time   time.Time `json:"time"`
}

// AuctionDetail is the auction page projection
type AuctionDetail struct {
	model.Auction
	Product    *model.Product         `json:"product"`
	Seller     *model.User            `json:"seller"`
	Bids       int                    `json:"bids"`
	BidHistory []BidHistoryEntry      `json:"bid_history"`
	TopBidders []bidding.RankedBidder `json:"top_bidders"`
}

// AuctionQuery assembles read models and closes expired auctions it encounters
type AuctionQuery struct {
	repo    repository.AuctionDB
	catalog repository.Catalog
	closer  Closer
	topN    int
}

// NewAuctionQuery creates a new AuctionQuery
func NewAuctionQuery(repo repository.AuctionDB, catalog repository.Catalog, closer Closer) *AuctionQuery {
	return &AuctionQuery{repo: repo, catalog: catalog, closer: closer, topN: DefaultTopBidders}
}

// GetAuctionDetail returns nil, nil when the auction does not exist
func (q *AuctionQuery) GetAuctionDetail(ctx context.Context, auctionID int64) (*AuctionDetail, error) {
	auction, err := q.repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("query: failed to load auction %d: %w", auctionID, err)
	}
	if auction == nil {
		return nil, nil
	}

	current, _, err := q.closer.CloseIfEligible(ctx, *auction, false)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	bids, err := q.repo.GetBidsByAuctionID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("query: failed to get bids for auction %d: %w", auctionID, err)
	}

	product, err := q.catalog.GetProductByID(ctx, current.ProductID)
	if err != nil {
		return nil, fmt.Errorf("query: failed to load product %d: %w", current.ProductID, err)
	}
	seller, err := q.catalog.GetUserByID(ctx, current.SellerID)
	if err != nil {
		return nil, fmt.Errorf("query: failed to load seller %d: %w", current.SellerID, err)
	}

	history := make([]BidHistoryEntry, 0, len(bids))
	for _, b := range bids {
		history = append(history, BidHistoryEntry{Amount: b.BidAmount, Time: b.CreatedAt})
	}

	return &AuctionDetail{
		Auction:    current,
		Product:    product,
		Seller:     seller,
		Bids:       len(bids),
		BidHistory: history,
		TopBidders: bidding.TopBidders(bids, q.topN),
	}, nil
}

// GetActiveAuctions lists auctions still open for bidding. Expired auctions found on the
// way are closed and left out.
func (q *AuctionQuery) GetActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	auctions, err := q.repo.GetActiveAuctions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("query: failed to list active auctions: %w", err)
	}

	live := make([]model.Auction, 0, len(auctions))
	for _, a := range auctions {
		current, _, err := q.closer.CloseIfEligible(ctx, a, false)
		if err != nil {
			utils.Warn("check-on-read close failed", map[string]any{"auction_id": a.ID, "error": err.Error()})
			continue
		}
		if current.Status == model.AuctionActive {
			live = append(live, current)
		}
	}
	return live, nil
}
