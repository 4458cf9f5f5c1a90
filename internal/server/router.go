package server

import (
	"net/http"

	auctionhandler "souq-market/services/auction/handler"
	messaginghandler "souq-market/services/messaging/handler"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer calls into
type Services struct {
	Bidding   auctionhandler.BiddingServiceInterface
	Lifecycle auctionhandler.LifecycleInterface
	Query     auctionhandler.QueryInterface
	Messaging messaginghandler.MessagingServiceInterface
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services, jwtService *utils.JWTService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // X-Request-ID on every response
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/healthz", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"ok": true}, "healthy")
	})

	auctionHandler := auctionhandler.NewAuctionHandler(svc.Bidding, svc.Lifecycle, svc.Query)
	messagingHandler := messaginghandler.NewMessagingHandler(svc.Messaging)
	auth := AuthMiddleware(jwtService)

	// browsing is public
	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.GetActiveAuctionsHandler)
		auctions.GET("/:id", auctionHandler.GetAuctionHandler)
		auctions.GET("/:id/top-bidders", auctionHandler.GetTopBiddersHandler)
		auctions.GET("/:id/audit", auctionHandler.AuditAuctionHandler)
	}

	authed := router.Group("", auth)
	{
		authed.POST("/auctions", auctionHandler.CreateAuctionHandler)
		authed.POST("/auctions/:id/bids", auctionHandler.PlaceBidHandler)
		authed.POST("/auctions/:id/end", auctionHandler.EndAuctionHandler)
		authed.POST("/auctions/:id/cancel", auctionHandler.CancelAuctionHandler)
		authed.GET("/me/bids", auctionHandler.GetUserBidsHandler)
	}

	conversations := router.Group("/conversations", auth)
	{
		conversations.POST("", messagingHandler.OpenConversationHandler)
		conversations.GET("", messagingHandler.ListConversationsHandler)
		conversations.GET("/:id/messages", messagingHandler.GetMessagesHandler)
		conversations.POST("/:id/messages", messagingHandler.SendMessageHandler)
		conversations.POST("/:id/read", messagingHandler.MarkReadHandler)
	}

	return router
}
