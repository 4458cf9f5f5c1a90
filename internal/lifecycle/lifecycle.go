package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
	"souq-market/utils"
)

// AllowedDurations lists the auction lengths, in hours, a seller may choose from
var AllowedDurations = []int{12, 24, 36, 48, 72}

// ParseDurationHours converts the wire form ("12", "24", ...) into hours
func ParseDurationHours(raw string) (int, error) {
	hours, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("lifecycle: %w - %q is not a number", auctionerrors.ErrInvalidDuration, raw)
	}
	if !validDuration(hours) {
		return 0, fmt.Errorf("lifecycle: %w - got %d", auctionerrors.ErrInvalidDuration, hours)
	}
	return hours, nil
}

func validDuration(hours int) bool {
	for _, d := range AllowedDurations {
		if d == hours {
			return true
		}
	}
	return false
}

//go:generate mockgen -source=lifecycle.go -destination=mock_lifecycle.go -package=lifecycle

// SettlementHook is notified once per auction, by the call that moved it to ended.
// winningBid is nil when the auction closed without bids.
type SettlementHook interface {
	OnAuctionClosed(ctx context.Context, auction model.Auction, winningBid *model.Bid) error
}

// Manager owns auction state transitions
type Manager struct {
	repo    repository.AuctionDB
	catalog repository.Catalog
	hook    SettlementHook
	now     func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSettlementHook registers the hook invoked when an auction ends
func WithSettlementHook(hook SettlementHook) Option {
	return func(m *Manager) { m.hook = hook }
}

// NewManager creates a new lifecycle Manager
func NewManager(repo repository.AuctionDB, catalog repository.Catalog, opts ...Option) *Manager {
	m := &Manager{
		repo:    repo,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateAuctionInput carries the seller's request for a new auction
type CreateAuctionInput struct {
	ProductID     int64
	SellerID      int64
	StartPrice    int64
	DurationHours int
}

// CreateAuction validates the request and opens a new active auction
func (m *Manager) CreateAuction(ctx context.Context, in CreateAuctionInput) (model.Auction, error) {
	if in.StartPrice <= 0 {
		return model.Auction{}, fmt.Errorf("lifecycle: %w - got %d", auctionerrors.ErrInvalidPrice, in.StartPrice)
	}
	if !validDuration(in.DurationHours) {
		return model.Auction{}, fmt.Errorf("lifecycle: %w - got %d", auctionerrors.ErrInvalidDuration, in.DurationHours)
	}

	product, err := m.catalog.GetProductByID(ctx, in.ProductID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("lifecycle: failed to load product %d: %w", in.ProductID, err)
	}
	if product == nil {
		return model.Auction{}, fmt.Errorf("lifecycle: product %d: %w", in.ProductID, auctionerrors.ErrProductNotFound)
	}
	if product.SellerID != in.SellerID {
		return model.Auction{}, fmt.Errorf("lifecycle: product %d: %w", in.ProductID, auctionerrors.ErrNotSeller)
	}

	start := m.now()
	auction := model.Auction{
		ProductID:         in.ProductID,
		SellerID:          in.SellerID,
		StartPrice:        in.StartPrice,
		CurrentHighestBid: in.StartPrice,
		StartTime:         start,
		EndTime:           start.Add(time.Duration(in.DurationHours) * time.Hour),
		Status:            model.AuctionActive,
	}

	created, err := m.repo.CreateAuction(ctx, auction)
	if err != nil {
		return model.Auction{}, fmt.Errorf("lifecycle: failed to create auction for product %d: %w", in.ProductID, err)
	}

	utils.Info("auction created", map[string]any{
		"auction_id":  created.ID,
		"product_id":  created.ProductID,
		"seller_id":   created.SellerID,
		"start_price": created.StartPrice,
		"end_time":    created.EndTime.Format(time.RFC3339),
	})
	return created, nil
}

// EndAuction closes an auction early on the seller's request. Ending an auction that is
// already terminal returns it unchanged.
func (m *Manager) EndAuction(ctx context.Context, auctionID, callerID int64) (model.Auction, error) {
	auction, err := m.loadOwned(ctx, auctionID, callerID)
	if err != nil {
		return model.Auction{}, err
	}

	closed, _, err := m.CloseIfEligible(ctx, auction, true)
	if err != nil {
		return model.Auction{}, err
	}
	return closed, nil
}

// CancelAuction withdraws an auction that nobody has bid on yet
func (m *Manager) CancelAuction(ctx context.Context, auctionID, callerID int64) (model.Auction, error) {
	auction, err := m.loadOwned(ctx, auctionID, callerID)
	if err != nil {
		return model.Auction{}, err
	}
	if auction.Status == model.AuctionCancelled {
		return auction, nil
	}
	if auction.Status != model.AuctionActive {
		return model.Auction{}, fmt.Errorf("lifecycle: auction %d is %s: %w", auctionID, auction.Status, auctionerrors.ErrAuctionNotActive)
	}
	if auction.TotalBids > 0 {
		return model.Auction{}, fmt.Errorf("lifecycle: auction %d: %w", auctionID, auctionerrors.ErrHasBids)
	}

	cancelled, transitioned, err := m.repo.EndAuction(ctx, auctionID, model.AuctionCancelled)
	if err != nil {
		return model.Auction{}, fmt.Errorf("lifecycle: failed to cancel auction %d: %w", auctionID, err)
	}
	if !transitioned {
		switch cancelled.Status {
		case model.AuctionCancelled:
			return cancelled, nil
		case model.AuctionActive:
			// a bid was accepted after the read above
			return model.Auction{}, fmt.Errorf("lifecycle: auction %d: %w", auctionID, auctionerrors.ErrHasBids)
		default:
			return model.Auction{}, fmt.Errorf("lifecycle: auction %d is %s: %w", auctionID, cancelled.Status, auctionerrors.ErrAuctionNotActive)
		}
	}

	utils.Info("auction cancelled", map[string]any{"auction_id": auctionID, "seller_id": callerID})
	return cancelled, nil
}

// CloseIfEligible is the only path that ends an auction. It is used by the seller's
// explicit end (force), the periodic sweep and check-on-read. The boolean reports
// whether this call performed the transition; calling it on a terminal or still
// running auction is a no-op.
func (m *Manager) CloseIfEligible(ctx context.Context, auction model.Auction, force bool) (model.Auction, bool, error) {
	if auction.Status != model.AuctionActive {
		return auction, false, nil
	}
	if !force && !auction.Expired(m.now()) {
		return auction, false, nil
	}

	ended, transitioned, err := m.repo.EndAuction(ctx, auction.ID, model.AuctionEnded)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("lifecycle: failed to close auction %d: %w", auction.ID, err)
	}
	if !transitioned {
		return ended, false, nil
	}

	winning, err := m.winningBid(ctx, ended)
	if err != nil {
		// the auction is closed; only the notification is lost
		utils.Error("failed to load winning bid", map[string]any{"auction_id": ended.ID, "error": err.Error()})
	}

	fields := map[string]any{
		"auction_id":  ended.ID,
		"total_bids":  ended.TotalBids,
		"final_price": ended.CurrentHighestBid,
		"forced":      force,
	}
	if winning != nil {
		fields["winner_id"] = winning.BidderID
	}
	utils.Info("auction closed", fields)

	if m.hook != nil && err == nil {
		if hookErr := m.hook.OnAuctionClosed(ctx, ended, winning); hookErr != nil {
			utils.Warn("settlement hook failed", map[string]any{"auction_id": ended.ID, "error": hookErr.Error()})
		}
	}

	return ended, true, nil
}

// SweepExpired closes every active auction whose end time has passed and returns how
// many it closed
func (m *Manager) SweepExpired(ctx context.Context) (int, error) {
	expired, err := m.repo.GetExpiredAuctions(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("lifecycle: failed to list expired auctions: %w", err)
	}

	closed := 0
	var errs []error
	for _, auction := range expired {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		_, transitioned, err := m.CloseIfEligible(ctx, auction, false)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if transitioned {
			closed++
		}
	}
	return closed, errors.Join(errs...)
}

func (m *Manager) loadOwned(ctx context.Context, auctionID, callerID int64) (model.Auction, error) {
	auction, err := m.repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("lifecycle: failed to load auction %d: %w", auctionID, err)
	}
	if auction == nil {
		return model.Auction{}, fmt.Errorf("lifecycle: auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.SellerID != callerID {
		return model.Auction{}, fmt.Errorf("lifecycle: auction %d: %w", auctionID, auctionerrors.ErrNotSeller)
	}
	return *auction, nil
}

func (m *Manager) winningBid(ctx context.Context, auction model.Auction) (*model.Bid, error) {
	if auction.TotalBids == 0 {
		return nil, nil
	}
	bids, err := m.repo.GetBidsByAuctionID(ctx, auction.ID)
	if err != nil {
		return nil, err
	}
	for i := range bids {
		if bids[i].Status == model.BidWon {
			return &bids[i], nil
		}
	}
	return nil, nil
}
