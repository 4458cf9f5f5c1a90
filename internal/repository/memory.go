package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB, Catalog and
// MessageDB. A single mutex serializes writers, which makes every conditional write
// linearizable per auction.
type MemoryRepo struct {
	mu sync.RWMutex

	auctions     map[int64]model.Auction // key: auctionID -> value: auction
	bids         map[int64][]model.Bid   // key: auctionID -> value: bid history in insertion order
	userAuctions map[int64][]int64       // key: bidderID -> value: auctionIDs the user has bid on

	products map[int64]model.Product
	users    map[int64]model.User

	conversations map[int64]model.Conversation
	messages      map[int64][]model.Message // key: conversationID -> value: messages

	nextAuctionID      int64
	nextBidID          int64
	nextConversationID int64
	nextMessageID      int64
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:      make(map[int64]model.Auction),
		bids:          make(map[int64][]model.Bid),
		userAuctions:  make(map[int64][]int64),
		products:      make(map[int64]model.Product),
		users:         make(map[int64]model.User),
		conversations: make(map[int64]model.Conversation),
		messages:      make(map[int64][]model.Message),
	}
}

// CreateAuction stores a new auction and assigns it an ID
func (r *MemoryRepo) CreateAuction(_ context.Context, auction model.Auction) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextAuctionID++
	auction.ID = r.nextAuctionID
	now := time.Now().UTC()
	if auction.CreatedAt.IsZero() {
		auction.CreatedAt = now
	}
	auction.UpdatedAt = now

	r.auctions[auction.ID] = auction
	return auction, nil
}

// GetAuctionByID returns a copy of the auction or nil when absent
func (r *MemoryRepo) GetAuctionByID(_ context.Context, auctionID int64) (*model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return nil, nil
	}
	return copyAuction(auction), nil
}

// GetActiveAuctions returns active auctions ordered by end time
func (r *MemoryRepo) GetActiveAuctions(_ context.Context, liveAt *time.Time) ([]model.Auction, error) {
	return r.filterAuctions(func(a model.Auction) bool {
		if a.Status != model.AuctionActive {
			return false
		}
		return liveAt == nil || a.EndTime.After(*liveAt)
	}), nil
}

// GetExpiredAuctions returns active auctions whose end time has passed
func (r *MemoryRepo) GetExpiredAuctions(_ context.Context, now time.Time) ([]model.Auction, error) {
	return r.filterAuctions(func(a model.Auction) bool {
		return a.Status == model.AuctionActive && a.Expired(now)
	}), nil
}

func (r *MemoryRepo) filterAuctions(keep func(model.Auction) bool) []model.Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if keep(a) {
			out = append(out, *copyAuction(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EndTime.Equal(out[j].EndTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].EndTime.Before(out[j].EndTime)
	})
	return out
}

// RecordBid performs the compare-and-swap accept of a bid
func (r *MemoryRepo) RecordBid(_ context.Context, bid model.Bid, observedHighest int64, now time.Time) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[bid.AuctionID]
	if !ok {
		return model.Bid{}, fmt.Errorf("record bid for auction %d: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.Status != model.AuctionActive || auction.Expired(now) || auction.CurrentHighestBid != observedHighest {
		return model.Bid{}, fmt.Errorf("record bid for auction %d: %w", bid.AuctionID, auctionerrors.ErrStaleAuction)
	}

	history := r.bids[bid.AuctionID]
	for i := range history {
		if history[i].Status == model.BidActive {
			history[i].Status = model.BidOutbid
		}
	}

	r.nextBidID++
	bid.ID = r.nextBidID
	bid.Status = model.BidActive
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = now
	}
	r.bids[bid.AuctionID] = append(history, bid)

	bidder := bid.BidderID
	auction.CurrentHighestBid = bid.BidAmount
	auction.HighestBidderID = &bidder
	auction.TotalBids++
	auction.UpdatedAt = now
	r.auctions[auction.ID] = auction

	for _, id := range r.userAuctions[bid.BidderID] {
		if id == bid.AuctionID {
			return bid, nil
		}
	}
	r.userAuctions[bid.BidderID] = append(r.userAuctions[bid.BidderID], bid.AuctionID)

	return bid, nil
}

// GetBidsByAuctionID returns all bids for an auction in insertion order
func (r *MemoryRepo) GetBidsByAuctionID(_ context.Context, auctionID int64) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Bid{}, r.bids[auctionID]...), nil
}

// GetUserBids returns all bids placed by a user, newest first
func (r *MemoryRepo) GetUserBids(_ context.Context, bidderID int64) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bid, 0)
	for _, auctionID := range r.userAuctions[bidderID] {
		for _, b := range r.bids[auctionID] {
			if b.BidderID == bidderID {
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// EndAuction transitions an active auction and finalizes its bids
func (r *MemoryRepo) EndAuction(_ context.Context, auctionID int64, status model.AuctionStatus) (model.Auction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, false, fmt.Errorf("end auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.Status != model.AuctionActive {
		return *copyAuction(auction), false, nil
	}
	if status == model.AuctionCancelled && auction.TotalBids > 0 {
		return *copyAuction(auction), false, nil
	}

	auction.Status = status
	auction.UpdatedAt = time.Now().UTC()
	r.auctions[auctionID] = auction

	history := r.bids[auctionID]
	for i := range history {
		if history[i].Status != model.BidActive {
			continue
		}
		if isWinningBid(auction, history[i]) {
			history[i].Status = model.BidWon
		} else {
			history[i].Status = model.BidOutbid
		}
	}

	return *copyAuction(auction), true, nil
}

// isWinningBid reports whether b is the bid that wins an auction that just ended
func isWinningBid(a model.Auction, b model.Bid) bool {
	return a.Status == model.AuctionEnded &&
		a.HighestBidderID != nil &&
		*a.HighestBidderID == b.BidderID &&
		a.CurrentHighestBid == b.BidAmount
}

// GetProductByID returns the product or nil when absent
func (r *MemoryRepo) GetProductByID(_ context.Context, productID int64) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetUserByID returns the user or nil when absent
func (r *MemoryRepo) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// AddProduct adds a product to the catalog. Intended for tests and the memory store seed.
func (r *MemoryRepo) AddProduct(p model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// AddUser adds a user to the catalog. Intended for tests and the memory store seed.
func (r *MemoryRepo) AddUser(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

// SetAuction overwrites a stored auction. This method is intended for tests only.
func (r *MemoryRepo) SetAuction(a model.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[a.ID] = a
	if a.ID > r.nextAuctionID {
		r.nextAuctionID = a.ID
	}
}

func copyAuction(a model.Auction) *model.Auction {
	if a.HighestBidderID != nil {
		id := *a.HighestBidderID
		a.HighestBidderID = &id
	}
	return &a
}
