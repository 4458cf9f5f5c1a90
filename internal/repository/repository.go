package repository

import (
	"context"
	"time"

	model "souq-market/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the auction and bid storage interface. Implementations perform no
// business validation; they only guard the conditional writes the bidding engine and the
// lifecycle manager rely on.
type AuctionDB interface {
	// CreateAuction inserts a new auction and returns it with its assigned ID
	CreateAuction(ctx context.Context, auction model.Auction) (model.Auction, error)

	// GetAuctionByID returns nil, nil when the auction does not exist
	GetAuctionByID(ctx context.Context, auctionID int64) (*model.Auction, error)

	// GetActiveAuctions lists auctions with status active. When liveAt is set, only
	// auctions whose end time is after liveAt are returned.
	GetActiveAuctions(ctx context.Context, liveAt *time.Time) ([]model.Auction, error)

	// GetExpiredAuctions lists active auctions whose end time is at or before now
	GetExpiredAuctions(ctx context.Context, now time.Time) ([]model.Auction, error)

	// RecordBid inserts bid as the new active bid and moves the auction's highest-bid
	// fields to it, but only while the auction is active, not expired at now and still
	// has current_highest_bid == observedHighest. Otherwise it returns
	// auctionerrors.ErrStaleAuction and writes nothing. The previously active bid
	// becomes outbid in the same transaction.
	RecordBid(ctx context.Context, bid model.Bid, observedHighest int64, now time.Time) (model.Bid, error)

	// GetBidsByAuctionID returns the bid history ordered by creation time ascending
	GetBidsByAuctionID(ctx context.Context, auctionID int64) ([]model.Bid, error)

	// GetUserBids returns every bid placed by bidderID, newest first
	GetUserBids(ctx context.Context, bidderID int64) ([]model.Bid, error)

	// EndAuction moves an active auction to status. The boolean reports whether this
	// call performed the transition; a terminal auction is returned unchanged with false.
	// Cancelling only succeeds while total_bids is zero, otherwise the still active
	// auction is returned with false.
	// When status is ended, the active bid matching the highest bidder and amount
	// becomes won and any other active bid becomes outbid.
	EndAuction(ctx context.Context, auctionID int64, status model.AuctionStatus) (model.Auction, bool, error)
}

// Catalog is the read-only view of the product and user tables owned by other services
type Catalog interface {
	GetProductByID(ctx context.Context, productID int64) (*model.Product, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

// MessageDB defines the conversation and message storage interface
type MessageDB interface {
	// GetOrCreateConversation returns the conversation for the (buyer, seller, product)
	// triple, creating it when absent. The boolean reports whether it was created.
	GetOrCreateConversation(ctx context.Context, conv model.Conversation) (model.Conversation, bool, error)

	// GetConversationByID returns nil, nil when the conversation does not exist
	GetConversationByID(ctx context.Context, conversationID int64) (*model.Conversation, error)

	// GetUserConversations lists conversations where userID is buyer or seller,
	// most recent activity first
	GetUserConversations(ctx context.Context, userID int64) ([]model.Conversation, error)

	// InsertMessage appends msg and bumps the conversation's last message time
	InsertMessage(ctx context.Context, msg model.Message) (model.Message, error)

	// GetConversationMessages returns messages ordered by creation time ascending
	GetConversationMessages(ctx context.Context, conversationID int64) ([]model.Message, error)

	CountUnread(ctx context.Context, conversationID, receiverID int64) (int, error)

	// MarkMessagesAsRead flags unread messages addressed to receiverID and returns how many changed
	MarkMessagesAsRead(ctx context.Context, conversationID, receiverID int64) (int, error)
}
