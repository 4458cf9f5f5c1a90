package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
	"souq-market/utils"
)

// defaultMaxAttempts bounds how often a bid is re-validated after losing a race
const defaultMaxAttempts = 5

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo        repository.AuctionDB
	now         func() time.Time
	maxAttempts int
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) { s.now = now }
}

// WithMaxAttempts sets how many compare-and-swap attempts a single bid may take
func WithMaxAttempts(n int) Option {
	return func(s *BiddingService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:        repo,
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBid validates and records a bid. Validation always runs against a fresh read of
// the auction; if the auction changes between that read and the write, the bid is
// validated again against the new state.
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (model.Bid, error) {
	if auctionID <= 0 || bidderID <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	for attempt := 1; ; attempt++ {
		auction, err := s.repo.GetAuctionByID(ctx, auctionID)
		if err != nil {
			return model.Bid{}, fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
		}
		if auction == nil {
			return model.Bid{}, fmt.Errorf("service: auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}

		if err := s.validateBid(*auction, bidderID, amount); err != nil {
			return model.Bid{}, err
		}

		bid, err := s.tryAcceptBid(ctx, *auction, bidderID, amount)
		if err == nil {
			return bid, nil
		}
		if !errors.Is(err, auctionerrors.ErrStaleAuction) {
			return model.Bid{}, fmt.Errorf("service: failed to record bid on auction %d by user %d: %w", auctionID, bidderID, err)
		}
		if attempt >= s.maxAttempts {
			return model.Bid{}, fmt.Errorf("service: auction %d kept changing after %d attempts: %w", auctionID, attempt, auctionerrors.ErrConflict)
		}
		utils.Debug("auction changed before bid was written, retrying", map[string]any{
			"auction_id": auctionID,
			"bidder_id":  bidderID,
			"attempt":    attempt,
		})
	}
}

// validateBid checks the business rules for a bid against the auction as just read
func (s *BiddingService) validateBid(auction model.Auction, bidderID, amount int64) error {
	if auction.Status != model.AuctionActive {
		return fmt.Errorf("service: auction %d is %s: %w", auction.ID, auction.Status, auctionerrors.ErrAuctionEnded)
	}
	if auction.Expired(s.now()) {
		return fmt.Errorf("service: auction %d ended at %s: %w", auction.ID, auction.EndTime.Format(time.RFC3339), auctionerrors.ErrAuctionEnded)
	}
	if auction.SellerID == bidderID {
		return fmt.Errorf("service: auction %d: %w", auction.ID, auctionerrors.ErrSelfBid)
	}
	if amount <= auction.CurrentHighestBid {
		return fmt.Errorf("service: %w - current highest bid is %d", auctionerrors.ErrBidTooLow, auction.CurrentHighestBid)
	}
	return nil
}

// tryAcceptBid is the single compare-and-swap point of the engine: the write only
// lands if the auction still carries the highest bid this attempt validated against
func (s *BiddingService) tryAcceptBid(ctx context.Context, auction model.Auction, bidderID, amount int64) (model.Bid, error) {
	now := s.now()
	bid := model.Bid{
		AuctionID: auction.ID,
		BidderID:  bidderID,
		BidAmount: amount,
		Status:    model.BidActive,
		CreatedAt: now,
	}
	return s.repo.RecordBid(ctx, bid, auction.CurrentHighestBid, now)
}

// GetUserBids returns all bids placed by a user, newest first
func (s *BiddingService) GetUserBids(ctx context.Context, bidderID int64) ([]model.Bid, error) {
	if bidderID <= 0 {
		return nil, fmt.Errorf("service: %w - empty bidder ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetUserBids(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %d: %w", bidderID, err)
	}
	return bids, nil
}

// GetBidsForAuction returns the bid history of an existing auction, oldest first
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	auction, err := s.repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
	}
	if auction == nil {
		return nil, fmt.Errorf("service: auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	bids, err := s.repo.GetBidsByAuctionID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

// TopBiddersForAuction ranks the bidders of an auction and returns at most n of them
func (s *BiddingService) TopBiddersForAuction(ctx context.Context, auctionID int64, n int) ([]RankedBidder, error) {
	bids, err := s.GetBidsForAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	return TopBidders(bids, n), nil
}

// Reconcile recomputes the auction's denormalized highest-bid fields from its bid history
func (s *BiddingService) Reconcile(ctx context.Context, auctionID int64) (AuditReport, error) {
	auction, err := s.repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return AuditReport{}, fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
	}
	if auction == nil {
		return AuditReport{}, fmt.Errorf("service: auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	bids, err := s.repo.GetBidsByAuctionID(ctx, auctionID)
	if err != nil {
		return AuditReport{}, fmt.Errorf("service: failed to get bids for auction %d: %w", auctionID, err)
	}
	return AuditHighestBid(*auction, bids), nil
}
