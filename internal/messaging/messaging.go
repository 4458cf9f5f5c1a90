package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
)

// MaxMessageLength is the longest message body accepted, in characters
const MaxMessageLength = 4000

// ConversationSummary is a conversation as listed in the caller's inbox
type ConversationSummary struct {
	model.Conversation
	OtherUser   *model.User    `json:"other_user"`
	Product     *model.Product `json:"product"`
	UnreadCount int            `json:"unread_count"`
}

// Service implements buyer/seller conversations
type Service struct {
	repo    repository.MessageDB
	catalog repository.Catalog
	now     func() time.Time
}

// NewService creates a new messaging Service
func NewService(repo repository.MessageDB, catalog repository.Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateConversation opens (or reopens) the thread between a buyer and a seller,
// optionally about a product
func (s *Service) GetOrCreateConversation(ctx context.Context, buyerID, sellerID int64, productID *int64) (model.Conversation, error) {
	if buyerID <= 0 || sellerID <= 0 {
		return model.Conversation{}, fmt.Errorf("messaging: %w - missing buyer or seller", auctionerrors.ErrInvalidArgument)
	}
	if buyerID == sellerID {
		return model.Conversation{}, fmt.Errorf("messaging: %w", auctionerrors.ErrSelfConversation)
	}

	seller, err := s.catalog.GetUserByID(ctx, sellerID)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("messaging: failed to load seller %d: %w", sellerID, err)
	}
	if seller == nil {
		return model.Conversation{}, fmt.Errorf("messaging: seller %d: %w", sellerID, auctionerrors.ErrUserNotFound)
	}
	if productID != nil {
		product, err := s.catalog.GetProductByID(ctx, *productID)
		if err != nil {
			return model.Conversation{}, fmt.Errorf("messaging: failed to load product %d: %w", *productID, err)
		}
		if product == nil {
			return model.Conversation{}, fmt.Errorf("messaging: product %d: %w", *productID, auctionerrors.ErrProductNotFound)
		}
	}

	conv, _, err := s.repo.GetOrCreateConversation(ctx, model.Conversation{
		BuyerID:   buyerID,
		SellerID:  sellerID,
		ProductID: productID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return model.Conversation{}, fmt.Errorf("messaging: failed to open conversation: %w", err)
	}
	return conv, nil
}

// SendMessage appends a message from senderID to the other participant
func (s *Service) SendMessage(ctx context.Context, conversationID, senderID, receiverID int64, content string) (model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > MaxMessageLength {
		return model.Message{}, fmt.Errorf("messaging: %w", auctionerrors.ErrEmptyMessage)
	}

	conv, err := s.participantOf(ctx, conversationID, senderID)
	if err != nil {
		return model.Message{}, err
	}
	if receiverID != conv.OtherParticipant(senderID) {
		return model.Message{}, fmt.Errorf("messaging: receiver %d: %w", receiverID, auctionerrors.ErrNotParticipant)
	}

	msg, err := s.repo.InsertMessage(ctx, model.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return model.Message{}, fmt.Errorf("messaging: failed to send message: %w", err)
	}
	return msg, nil
}

// GetConversationMessages returns the thread, oldest first, to one of its participants
func (s *Service) GetConversationMessages(ctx context.Context, conversationID, callerID int64) ([]model.Message, error) {
	if _, err := s.participantOf(ctx, conversationID, callerID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.GetConversationMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to get messages of conversation %d: %w", conversationID, err)
	}
	return msgs, nil
}

// GetUserConversations lists the caller's conversations with the counterpart, the
// product and the unread count
func (s *Service) GetUserConversations(ctx context.Context, userID int64) ([]ConversationSummary, error) {
	convs, err := s.repo.GetUserConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to list conversations of user %d: %w", userID, err)
	}

	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		summary := ConversationSummary{Conversation: c}

		summary.OtherUser, err = s.catalog.GetUserByID(ctx, c.OtherParticipant(userID))
		if err != nil {
			return nil, fmt.Errorf("messaging: failed to load user: %w", err)
		}
		if c.ProductID != nil {
			summary.Product, err = s.catalog.GetProductByID(ctx, *c.ProductID)
			if err != nil {
				return nil, fmt.Errorf("messaging: failed to load product: %w", err)
			}
		}
		summary.UnreadCount, err = s.repo.CountUnread(ctx, c.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("messaging: failed to count unread messages: %w", err)
		}

		out = append(out, summary)
	}
	return out, nil
}

// MarkAsRead marks every message addressed to the caller in the conversation as read
func (s *Service) MarkAsRead(ctx context.Context, conversationID, callerID int64) (int, error) {
	if _, err := s.participantOf(ctx, conversationID, callerID); err != nil {
		return 0, err
	}

	n, err := s.repo.MarkMessagesAsRead(ctx, conversationID, callerID)
	if err != nil {
		return 0, fmt.Errorf("messaging: failed to mark conversation %d read: %w", conversationID, err)
	}
	return n, nil
}

func (s *Service) participantOf(ctx context.Context, conversationID, userID int64) (model.Conversation, error) {
	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("messaging: failed to load conversation %d: %w", conversationID, err)
	}
	if conv == nil {
		return model.Conversation{}, fmt.Errorf("messaging: conversation %d: %w", conversationID, auctionerrors.ErrConversationNotFound)
	}
	if !conv.HasParticipant(userID) {
		return model.Conversation{}, fmt.Errorf("messaging: conversation %d: %w", conversationID, auctionerrors.ErrNotParticipant)
	}
	return *conv, nil
}
