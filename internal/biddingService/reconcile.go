package bidding

import (
	model "souq-market/internal/models"
)

// Discrepancy names a stored auction field that disagrees with the bid history
type Discrepancy struct {
	Field   string `json:"field"`
	Stored  any    `json:"stored"`
	Derived any    `json:"derived"`
}

// AuditReport is the outcome of comparing an auction row with its bids
type AuditReport struct {
	AuctionID     int64         `json:"auction_id"`
	Consistent    bool          `json:"consistent"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// AuditHighestBid recomputes current_highest_bid, highest_bidder_id and total_bids from
// bids (oldest first) and checks the bid status invariants: accepted amounts strictly
// increase, an active auction has exactly one active bid once bid on, and an ended
// auction with bids has exactly one won bid holding the maximum.
func AuditHighestBid(auction model.Auction, bids []model.Bid) AuditReport {
	report := AuditReport{AuctionID: auction.ID, Discrepancies: []Discrepancy{}}
	add := func(field string, stored, derived any) {
		report.Discrepancies = append(report.Discrepancies, Discrepancy{Field: field, Stored: stored, Derived: derived})
	}

	derivedHighest := auction.StartPrice
	var derivedBidder *int64
	var top *model.Bid
	active, won := 0, 0
	for i := range bids {
		b := &bids[i]
		if b.BidAmount <= derivedHighest {
			add("bid_sequence", b.BidAmount, derivedHighest)
		}
		if b.BidAmount > derivedHighest || top == nil {
			derivedHighest = b.BidAmount
			id := b.BidderID
			derivedBidder = &id
			top = b
		}
		switch b.Status {
		case model.BidActive:
			active++
		case model.BidWon:
			won++
		}
	}

	if auction.CurrentHighestBid != derivedHighest {
		add("current_highest_bid", auction.CurrentHighestBid, derivedHighest)
	}
	if !sameBidder(auction.HighestBidderID, derivedBidder) {
		add("highest_bidder_id", auction.HighestBidderID, derivedBidder)
	}
	if auction.TotalBids != len(bids) {
		add("total_bids", auction.TotalBids, len(bids))
	}

	wantActive, wantWon := 0, 0
	switch {
	case len(bids) == 0:
	case auction.Status == model.AuctionActive:
		wantActive = 1
	case auction.Status == model.AuctionEnded:
		wantWon = 1
	}
	if active != wantActive {
		add("active_bids", active, wantActive)
	}
	if won != wantWon {
		add("won_bids", won, wantWon)
	}
	if top != nil && wantActive+wantWon == 1 {
		expected := model.BidActive
		if wantWon == 1 {
			expected = model.BidWon
		}
		if top.Status != expected {
			add("top_bid_status", top.Status, expected)
		}
	}

	report.Consistent = len(report.Discrepancies) == 0
	return report
}

func sameBidder(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
