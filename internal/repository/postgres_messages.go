package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
)

const conversationColumns = `id, buyer_id, seller_id, product_id, last_message_at, created_at`

func scanConversation(row scanner) (model.Conversation, error) {
	var c model.Conversation
	err := row.Scan(&c.ID, &c.BuyerID, &c.SellerID, &c.ProductID, &c.LastMessageAt, &c.CreatedAt)
	return c, err
}

const messageColumns = `id, conversation_id, sender_id, receiver_id, content, is_read, created_at`

func scanMessage(row scanner) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt)
	return m, err
}

// GetOrCreateConversation relies on the unique (buyer, seller, product) index so that
// two concurrent first contacts end up in the same conversation
func (r *PostgresRepo) GetOrCreateConversation(ctx context.Context, conv model.Conversation) (model.Conversation, bool, error) {
	var created bool
	row := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (buyer_id, seller_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (buyer_id, seller_id, (COALESCE(product_id, 0)))
		DO UPDATE SET buyer_id = EXCLUDED.buyer_id
		RETURNING `+conversationColumns+`, (xmax = 0) AS inserted`,
		conv.BuyerID, conv.SellerID, conv.ProductID)

	var c model.Conversation
	if err := row.Scan(&c.ID, &c.BuyerID, &c.SellerID, &c.ProductID, &c.LastMessageAt, &c.CreatedAt, &created); err != nil {
		return model.Conversation{}, false, fmt.Errorf("get or create conversation %d/%d: %w", conv.BuyerID, conv.SellerID, err)
	}
	return c, created, nil
}

// GetConversationByID returns nil, nil when the conversation does not exist
func (r *PostgresRepo) GetConversationByID(ctx context.Context, conversationID int64) (*model.Conversation, error) {
	c, err := scanConversation(r.pool.QueryRow(ctx, `SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, conversationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation %d: %w", conversationID, err)
	}
	return &c, nil
}

// GetUserConversations lists a user's conversations, most recent activity first
func (r *PostgresRepo) GetUserConversations(ctx context.Context, userID int64) ([]model.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+` FROM conversations
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY COALESCE(last_message_at, created_at) DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("get conversations for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]model.Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("get conversations for user %d: %w", userID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertMessage appends a message and bumps last_message_at in one transaction
func (r *PostgresRepo) InsertMessage(ctx context.Context, msg model.Message) (model.Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	tag, err := tx.Exec(ctx, `UPDATE conversations SET last_message_at = $2 WHERE id = $1`, msg.ConversationID, msg.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message into conversation %d: %w", msg.ConversationID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Message{}, fmt.Errorf("insert message into conversation %d: %w", msg.ConversationID, auctionerrors.ErrConversationNotFound)
	}

	inserted, err := scanMessage(tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+messageColumns,
		msg.ConversationID, msg.SenderID, msg.ReceiverID, msg.Content, msg.CreatedAt))
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message into conversation %d: %w", msg.ConversationID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Message{}, fmt.Errorf("insert message into conversation %d: commit: %w", msg.ConversationID, err)
	}
	return inserted, nil
}

// GetConversationMessages returns the messages of a conversation, oldest first
func (r *PostgresRepo) GetConversationMessages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at, id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get messages for conversation %d: %w", conversationID, err)
	}
	defer rows.Close()

	out := make([]model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("get messages for conversation %d: %w", conversationID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountUnread counts unread messages addressed to receiverID
func (r *PostgresRepo) CountUnread(ctx context.Context, conversationID, receiverID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages
		WHERE conversation_id = $1 AND receiver_id = $2 AND is_read = false`,
		conversationID, receiverID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread in conversation %d: %w", conversationID, err)
	}
	return n, nil
}

// MarkMessagesAsRead flags unread messages addressed to receiverID as read
func (r *PostgresRepo) MarkMessagesAsRead(ctx context.Context, conversationID, receiverID int64) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages SET is_read = true
		WHERE conversation_id = $1 AND receiver_id = $2 AND is_read = false`,
		conversationID, receiverID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read in conversation %d: %w", conversationID, err)
	}
	return int(tag.RowsAffected()), nil
}
