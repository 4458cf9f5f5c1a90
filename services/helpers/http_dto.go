package helpers

import "time"

// Request/Response DTOs
type CreateAuctionRequest struct {
	ProductID     int64  `json:"product_id" binding:"required,gt=0"`
	StartPrice    int64  `json:"start_price" binding:"required,gt=0"`
	DurationHours string `json:"duration_hours" binding:"required"`
}

type CreateAuctionResponse struct {
	AuctionID int64     `json:"auction_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type PlaceBidRequest struct {
	BidAmount int64 `json:"bid_amount" binding:"required,gt=0"`
}

type PlaceBidResponse struct {
	Success   bool   `json:"success"`
	BidID     int64  `json:"bid_id"`
	AuctionID int64  `json:"auction_id"`
	BidAmount int64  `json:"bid_amount"`
	CreatedAt string `json:"created_at"`
}

type AuctionStatusResponse struct {
	Success   bool   `json:"success"`
	AuctionID int64  `json:"auction_id"`
	Status    string `json:"status"`
}

type OpenConversationRequest struct {
	SellerID  int64  `json:"seller_id" binding:"required,gt=0"`
	ProductID *int64 `json:"product_id" binding:"omitempty,gt=0"`
}

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required,gt=0"`
	Content    string `json:"content" binding:"required"`
}

type MarkReadResponse struct {
	Success bool `json:"success"`
	Updated int  `json:"updated"`
}
