package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
)

// GetOrCreateConversation finds or creates the (buyer, seller, product) conversation
func (r *MemoryRepo) GetOrCreateConversation(_ context.Context, conv model.Conversation) (model.Conversation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.conversations {
		if c.BuyerID == conv.BuyerID && c.SellerID == conv.SellerID && sameProduct(c.ProductID, conv.ProductID) {
			return c, false, nil
		}
	}

	r.nextConversationID++
	conv.ID = r.nextConversationID
	conv.LastMessageAt = nil
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}
	r.conversations[conv.ID] = conv
	return conv, true, nil
}

func sameProduct(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// GetConversationByID returns the conversation or nil when absent
func (r *MemoryRepo) GetConversationByID(_ context.Context, conversationID int64) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conversations[conversationID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetUserConversations lists a user's conversations, most recent activity first
func (r *MemoryRepo) GetUserConversations(_ context.Context, userID int64) ([]model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Conversation, 0)
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := lastActivity(out[i]), lastActivity(out[j])
		if ti.Equal(tj) {
			return out[i].ID > out[j].ID
		}
		return ti.After(tj)
	})
	return out, nil
}

func lastActivity(c model.Conversation) time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	return c.CreatedAt
}

// InsertMessage appends a message and bumps the conversation's last message time
func (r *MemoryRepo) InsertMessage(_ context.Context, msg model.Message) (model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[msg.ConversationID]
	if !ok {
		return model.Message{}, fmt.Errorf("insert message into conversation %d: %w", msg.ConversationID, auctionerrors.ErrConversationNotFound)
	}

	r.nextMessageID++
	msg.ID = r.nextMessageID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], msg)

	at := msg.CreatedAt
	conv.LastMessageAt = &at
	r.conversations[conv.ID] = conv

	return msg, nil
}

// GetConversationMessages returns the messages of a conversation in insertion order
func (r *MemoryRepo) GetConversationMessages(_ context.Context, conversationID int64) ([]model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Message{}, r.messages[conversationID]...), nil
}

// CountUnread counts unread messages addressed to receiverID
func (r *MemoryRepo) CountUnread(_ context.Context, conversationID, receiverID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, m := range r.messages[conversationID] {
		if m.ReceiverID == receiverID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

// MarkMessagesAsRead flags unread messages addressed to receiverID as read
func (r *MemoryRepo) MarkMessagesAsRead(_ context.Context, conversationID, receiverID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.messages[conversationID]
	n := 0
	for i := range msgs {
		if msgs[i].ReceiverID == receiverID && !msgs[i].IsRead {
			msgs[i].IsRead = true
			n++
		}
	}
	return n, nil
}
