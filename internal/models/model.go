package models

import "time"

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionEnded     AuctionStatus = "ended"
	AuctionCancelled AuctionStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s
func (s AuctionStatus) Terminal() bool {
	return s == AuctionEnded || s == AuctionCancelled
}

// BidStatus is the state of a single bid row
type BidStatus string

const (
	BidActive BidStatus = "active"
	BidOutbid BidStatus = "outbid"
	BidWon    BidStatus = "won"
)

// User is the minimal view of a marketplace account
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SellerName string `json:"seller_name,omitempty"`
}

// Product is the catalog listing an auction sells
type Product struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Status   string `json:"status"`
}

// Auction is the aggregate root of the bidding subsystem. Amounts are whole Iraqi dinar.
type Auction struct {
	ID                int64         `json:"id"`
	ProductID         int64         `json:"product_id"`
	SellerID          int64         `json:"seller_id"`
	StartPrice        int64         `json:"start_price"`
	CurrentHighestBid int64         `json:"current_highest_bid"`
	HighestBidderID   *int64        `json:"highest_bidder_id"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	Status            AuctionStatus `json:"status"`
	TotalBids         int           `json:"total_bids"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Expired reports whether the auction's end time has been reached at now
func (a Auction) Expired(now time.Time) bool {
	return !now.Before(a.EndTime)
}

// Bid represents a user's offer on an auction
type Bid struct {
	ID        int64     `json:"id"`
	AuctionID int64     `json:"auction_id"`
	BidderID  int64     `json:"bidder_id"`
	BidAmount int64     `json:"bid_amount"`
	Status    BidStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is a two-party thread between a buyer and a seller
type Conversation struct {
	ID            int64      `json:"id"`
	BuyerID       int64      `json:"buyer_id"`
	SellerID      int64      `json:"seller_id"`
	ProductID     *int64     `json:"product_id,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasParticipant reports whether userID is the buyer or the seller of c
func (c Conversation) HasParticipant(userID int64) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// OtherParticipant returns the counterpart of userID in c
func (c Conversation) OtherParticipant(userID int64) int64 {
	if c.BuyerID == userID {
		return c.SellerID
	}
	return c.BuyerID
}

// Message is a single entry in a conversation
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	ReceiverID     int64     `json:"receiver_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
