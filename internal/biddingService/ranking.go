package bidding

import (
	"sort"
	"time"

	model "souq-market/internal/models"
)

// RankedBidder is one row of the top-bidders leaderboard
type RankedBidder struct {
	Rank      int       `json:"rank"`
	BidderID  int64     `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	ReachedAt time.Time `json:"reached_at"`

	bidID int64
}

// TopBidders keeps each bidder's highest bid, orders bidders by that amount descending
// and returns at most n of them. A bidder who reached an amount first ranks above one
// who matched it later. n <= 0 returns every bidder.
func TopBidders(bids []model.Bid, n int) []RankedBidder {
	best := make(map[int64]*RankedBidder, len(bids))
	for _, b := range bids {
		cur, ok := best[b.BidderID]
		if !ok {
			best[b.BidderID] = &RankedBidder{BidderID: b.BidderID, Amount: b.BidAmount, ReachedAt: b.CreatedAt, bidID: b.ID}
			continue
		}
		if b.BidAmount > cur.Amount || (b.BidAmount == cur.Amount && reachedEarlier(b.CreatedAt, b.ID, cur.ReachedAt, cur.bidID)) {
			cur.Amount = b.BidAmount
			cur.ReachedAt = b.CreatedAt
			cur.bidID = b.ID
		}
	}

	ranked := make([]RankedBidder, 0, len(best))
	for _, r := range best {
		ranked = append(ranked, *r)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		if !ranked[i].ReachedAt.Equal(ranked[j].ReachedAt) || ranked[i].bidID != ranked[j].bidID {
			return reachedEarlier(ranked[i].ReachedAt, ranked[i].bidID, ranked[j].ReachedAt, ranked[j].bidID)
		}
		return ranked[i].BidderID < ranked[j].BidderID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func reachedEarlier(at time.Time, id int64, otherAt time.Time, otherID int64) bool {
	if !at.Equal(otherAt) {
		return at.Before(otherAt)
	}
	return id < otherID
}
