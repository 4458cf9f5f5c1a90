package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"souq-market/internal/auctionerrors"
	bidding "souq-market/internal/biddingService"
	"souq-market/internal/lifecycle"
	model "souq-market/internal/models"
	"souq-market/internal/query"
	"souq-market/services/helpers"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_handler.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (model.Bid, error)
	GetUserBids(ctx context.Context, bidderID int64) ([]model.Bid, error)
	TopBiddersForAuction(ctx context.Context, auctionID int64, n int) ([]bidding.RankedBidder, error)
	Reconcile(ctx context.Context, auctionID int64) (bidding.AuditReport, error)
}

type LifecycleInterface interface {
	CreateAuction(ctx context.Context, in lifecycle.CreateAuctionInput) (model.Auction, error)
	EndAuction(ctx context.Context, auctionID, callerID int64) (model.Auction, error)
	CancelAuction(ctx context.Context, auctionID, callerID int64) (model.Auction, error)
}

type QueryInterface interface {
	GetAuctionDetail(ctx context.Context, auctionID int64) (*query.AuctionDetail, error)
	GetActiveAuctions(ctx context.Context) ([]model.Auction, error)
}

type AuctionHandler struct {
	bidding   BiddingServiceInterface
	lifecycle LifecycleInterface
	query     QueryInterface
}

func NewAuctionHandler(b BiddingServiceInterface, l LifecycleInterface, q QueryInterface) *AuctionHandler {
	return &AuctionHandler{bidding: b, lifecycle: l, query: q}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, nil)
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	hours, err := lifecycle.ParseDurationHours(req.DurationHours)
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{"duration_hours": req.DurationHours})
		return
	}

	auction, err := h.lifecycle.CreateAuction(c.Request.Context(), lifecycle.CreateAuctionInput{
		ProductID:     req.ProductID,
		SellerID:      callerID,
		StartPrice:    req.StartPrice,
		DurationHours: hours,
	})
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{
			"product_id": req.ProductID,
			"seller_id":  callerID,
		})
		return
	}

	resp := helpers.CreateAuctionResponse{
		AuctionID: auction.ID,
		StartTime: auction.StartTime,
		EndTime:   auction.EndTime,
	}
	utils.JSONResponse(c, http.StatusCreated, resp, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.ID,
		"product_id": auction.ProductID,
		"seller_id":  callerID,
	})
}

// GetAuctionHandler handles GET /auctions/:id. A missing auction yields data: null.
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, nil)
		return
	}

	detail, err := h.query.GetAuctionDetail(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	if detail == nil {
		utils.JSONResponse(c, http.StatusOK, nil, "auction not found")
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "auction retrieved successfully")
}

// GetActiveAuctionsHandler handles GET /auctions
func (h *AuctionHandler) GetActiveAuctionsHandler(c *gin.Context) {
	auctions, err := h.query.GetActiveAuctions(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "GetActiveAuctionsHandler", err, nil)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "active auctions retrieved successfully")
	helpers.LogSuccess("GetActiveAuctionsHandler", "active auctions retrieved successfully", map[string]any{"count": len(auctions)})
}

// PlaceBidHandler handles POST /auctions/:id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, nil)
		return
	}
	auctionID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, nil)
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.bidding.PlaceBid(c.Request.Context(), auctionID, callerID, req.BidAmount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"bidder_id":  callerID,
			"bid_amount": req.BidAmount,
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Success:   true,
		BidID:     bid.ID,
		AuctionID: bid.AuctionID,
		BidAmount: bid.BidAmount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"bidder_id":  callerID,
		"bid_amount": bid.BidAmount,
	})
}

// GetUserBidsHandler handles GET /me/bids
func (h *AuctionHandler) GetUserBidsHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "GetUserBidsHandler", err, nil)
		return
	}

	bids, err := h.bidding.GetUserBids(c.Request.Context(), callerID)
	if err != nil {
		helpers.HandleServiceError(c, "GetUserBidsHandler", err, map[string]any{"user_id": callerID})
		return
	}
	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// EndAuctionHandler handles POST /auctions/:id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	h.transition(c, "EndAuctionHandler", "auction ended", h.lifecycle.EndAuction)
}

// CancelAuctionHandler handles POST /auctions/:id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	h.transition(c, "CancelAuctionHandler", "auction cancelled", h.lifecycle.CancelAuction)
}

func (h *AuctionHandler) transition(c *gin.Context, handlerName, message string, op func(context.Context, int64, int64) (model.Auction, error)) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, handlerName, err, nil)
		return
	}
	auctionID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, handlerName, err, nil)
		return
	}

	auction, err := op(c.Request.Context(), auctionID, callerID)
	if err != nil {
		helpers.HandleServiceError(c, handlerName, err, map[string]any{"auction_id": auctionID, "caller_id": callerID})
		return
	}

	resp := helpers.AuctionStatusResponse{Success: true, AuctionID: auction.ID, Status: string(auction.Status)}
	utils.JSONResponse(c, http.StatusOK, resp, message)
	helpers.LogSuccess(handlerName, message, map[string]any{"auction_id": auction.ID, "status": auction.Status})
}

// GetTopBiddersHandler handles GET /auctions/:id/top-bidders?n=3
func (h *AuctionHandler) GetTopBiddersHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "GetTopBiddersHandler", err, nil)
		return
	}

	n := query.DefaultTopBidders
	if raw := c.Query("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			helpers.HandleServiceError(c, "GetTopBiddersHandler", fmt.Errorf("%w: n must be a positive integer", auctionerrors.ErrInvalidArgument), map[string]any{"n": raw})
			return
		}
	}

	ranked, err := h.bidding.TopBiddersForAuction(c.Request.Context(), auctionID, n)
	if err != nil {
		helpers.HandleServiceError(c, "GetTopBiddersHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	if ranked == nil {
		ranked = []bidding.RankedBidder{}
	}

	utils.JSONResponse(c, http.StatusOK, ranked, "top bidders retrieved successfully")
}

// AuditAuctionHandler handles GET /auctions/:id/audit
func (h *AuctionHandler) AuditAuctionHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "AuditAuctionHandler", err, nil)
		return
	}

	report, err := h.bidding.Reconcile(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "AuditAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	if !report.Consistent {
		utils.Warn("AuditAuctionHandler: auction row disagrees with bid history", map[string]any{
			"auction_id":    auctionID,
			"discrepancies": len(report.Discrepancies),
		})
	}
	utils.JSONResponse(c, http.StatusOK, report, "audit completed")
}
