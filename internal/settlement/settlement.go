package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	model "souq-market/internal/models"
	"souq-market/utils"
)

// DefaultCommissionRate is the platform fee taken from the hammer price
var DefaultCommissionRate = decimal.RequireFromString("0.025")

// Settlement is the financial outcome of an auction that ended with a winner. All
// amounts are whole Iraqi dinar.
type Settlement struct {
	AuctionID    int64     `json:"auction_id" bson:"auction_id"`
	ProductID    int64     `json:"product_id" bson:"product_id"`
	SellerID     int64     `json:"seller_id" bson:"seller_id"`
	WinnerID     int64     `json:"winner_id" bson:"winner_id"`
	WinningBidID int64     `json:"winning_bid_id" bson:"winning_bid_id"`
	HammerPrice  int64     `json:"hammer_price" bson:"hammer_price"`
	Commission   int64     `json:"commission" bson:"commission"`
	SellerPayout int64     `json:"seller_payout" bson:"seller_payout"`
	ClosedAt     time.Time `json:"closed_at" bson:"closed_at"`
}

// Calculator derives settlements from closed auctions
type Calculator struct {
	rate decimal.Decimal
}

// NewCalculator creates a Calculator; rate must be within [0, 1)
func NewCalculator(rate decimal.Decimal) (*Calculator, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("settlement: commission rate %s out of range", rate)
	}
	return &Calculator{rate: rate}, nil
}

// Commission returns the fee on price, rounded half away from zero to whole dinar
func (c *Calculator) Commission(price int64) int64 {
	return decimal.NewFromInt(price).Mul(c.rate).Round(0).IntPart()
}

// Settle builds the settlement for auction; it reports false when there is no winner
func (c *Calculator) Settle(auction model.Auction, winning *model.Bid) (Settlement, bool) {
	if winning == nil {
		return Settlement{}, false
	}
	commission := c.Commission(winning.BidAmount)
	return Settlement{
		AuctionID:    auction.ID,
		ProductID:    auction.ProductID,
		SellerID:     auction.SellerID,
		WinnerID:     winning.BidderID,
		WinningBidID: winning.ID,
		HammerPrice:  winning.BidAmount,
		Commission:   commission,
		SellerPayout: winning.BidAmount - commission,
		ClosedAt:     auction.UpdatedAt,
	}, true
}

// Journal persists settlements for the order and payment services to pick up
type Journal interface {
	Record(ctx context.Context, s Settlement) error
}

// Hook implements lifecycle.SettlementHook
type Hook struct {
	calc     *Calculator
	journals []Journal
}

// NewHook creates a Hook writing every settlement to each journal
func NewHook(calc *Calculator, journals ...Journal) *Hook {
	return &Hook{calc: calc, journals: journals}
}

// OnAuctionClosed computes the settlement and hands it to the journals. Every journal
// is attempted; their errors are joined.
func (h *Hook) OnAuctionClosed(ctx context.Context, auction model.Auction, winningBid *model.Bid) error {
	s, ok := h.calc.Settle(auction, winningBid)
	if !ok {
		utils.Info("auction closed without bids", map[string]any{"auction_id": auction.ID})
		return nil
	}

	var errs []error
	for _, j := range h.journals {
		if err := j.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogJournal writes settlements to the structured log
type LogJournal struct{}

// Record logs s
func (LogJournal) Record(_ context.Context, s Settlement) error {
	utils.Info("auction settled", map[string]any{
		"auction_id":     s.AuctionID,
		"winner_id":      s.WinnerID,
		"seller_id":      s.SellerID,
		"hammer_price":   s.HammerPrice,
		"commission":     s.Commission,
		"seller_payout":  s.SellerPayout,
		"winning_bid_id": s.WinningBidID,
	})
	return nil
}
