package handler

import (
	"context"
	"net/http"

	"souq-market/internal/messaging"
	model "souq-market/internal/models"
	"souq-market/services/helpers"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=messaging_handler.go -destination=mock_messaging_handler.go -package=handler

type MessagingServiceInterface interface {
	GetOrCreateConversation(ctx context.Context, buyerID, sellerID int64, productID *int64) (model.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID, receiverID int64, content string) (model.Message, error)
	GetConversationMessages(ctx context.Context, conversationID, callerID int64) ([]model.Message, error)
	GetUserConversations(ctx context.Context, userID int64) ([]messaging.ConversationSummary, error)
	MarkAsRead(ctx context.Context, conversationID, callerID int64) (int, error)
}

type MessagingHandler struct {
	service MessagingServiceInterface
}

func NewMessagingHandler(s MessagingServiceInterface) *MessagingHandler {
	return &MessagingHandler{service: s}
}

// OpenConversationHandler handles POST /conversations. The caller is the buyer.
func (h *MessagingHandler) OpenConversationHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "OpenConversationHandler", err, nil)
		return
	}

	var req helpers.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "OpenConversationHandler", err)
		return
	}

	conv, err := h.service.GetOrCreateConversation(c.Request.Context(), callerID, req.SellerID, req.ProductID)
	if err != nil {
		helpers.HandleServiceError(c, "OpenConversationHandler", err, map[string]any{
			"buyer_id":  callerID,
			"seller_id": req.SellerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, conv, "conversation ready")
	helpers.LogSuccess("OpenConversationHandler", "conversation ready", map[string]any{"conversation_id": conv.ID})
}

// ListConversationsHandler handles GET /conversations
func (h *MessagingHandler) ListConversationsHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "ListConversationsHandler", err, nil)
		return
	}

	convs, err := h.service.GetUserConversations(c.Request.Context(), callerID)
	if err != nil {
		helpers.HandleServiceError(c, "ListConversationsHandler", err, map[string]any{"user_id": callerID})
		return
	}
	if convs == nil {
		convs = []messaging.ConversationSummary{}
	}

	utils.JSONResponse(c, http.StatusOK, convs, "conversations retrieved successfully")
}

// GetMessagesHandler handles GET /conversations/:id/messages
func (h *MessagingHandler) GetMessagesHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "GetMessagesHandler", err, nil)
		return
	}
	convID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "GetMessagesHandler", err, nil)
		return
	}

	msgs, err := h.service.GetConversationMessages(c.Request.Context(), convID, callerID)
	if err != nil {
		helpers.HandleServiceError(c, "GetMessagesHandler", err, map[string]any{"conversation_id": convID})
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	utils.JSONResponse(c, http.StatusOK, msgs, "messages retrieved successfully")
}

// SendMessageHandler handles POST /conversations/:id/messages
func (h *MessagingHandler) SendMessageHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "SendMessageHandler", err, nil)
		return
	}
	convID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "SendMessageHandler", err, nil)
		return
	}

	var req helpers.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SendMessageHandler", err)
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), convID, callerID, req.ReceiverID, req.Content)
	if err != nil {
		helpers.HandleServiceError(c, "SendMessageHandler", err, map[string]any{
			"conversation_id": convID,
			"sender_id":       callerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, msg, "message sent")
	helpers.LogSuccess("SendMessageHandler", "message sent", map[string]any{
		"conversation_id": convID,
		"message_id":      msg.ID,
	})
}

// MarkReadHandler handles POST /conversations/:id/read
func (h *MessagingHandler) MarkReadHandler(c *gin.Context) {
	callerID, err := helpers.CallerID(c)
	if err != nil {
		helpers.HandleServiceError(c, "MarkReadHandler", err, nil)
		return
	}
	convID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		helpers.HandleServiceError(c, "MarkReadHandler", err, nil)
		return
	}

	n, err := h.service.MarkAsRead(c.Request.Context(), convID, callerID)
	if err != nil {
		helpers.HandleServiceError(c, "MarkReadHandler", err, map[string]any{"conversation_id": convID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.MarkReadResponse{Success: true, Updated: n}, "conversation marked as read")
}
