package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// PostgresRepo implements AuctionDB, Catalog and MessageDB on top of a pgx pool. The
// pool is owned by the caller.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo wraps an open pool
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

// Migrate creates the tables and indexes when they do not exist yet
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

const auctionColumns = `id, product_id, seller_id, start_price, current_highest_bid, highest_bidder_id,
	start_time, end_time, status, total_bids, created_at, updated_at`

func scanAuction(row scanner) (model.Auction, error) {
	var a model.Auction
	var status string
	err := row.Scan(
		&a.ID,
		&a.ProductID,
		&a.SellerID,
		&a.StartPrice,
		&a.CurrentHighestBid,
		&a.HighestBidderID,
		&a.StartTime,
		&a.EndTime,
		&status,
		&a.TotalBids,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.Status = model.AuctionStatus(status)
	return a, err
}

const bidColumns = `id, auction_id, bidder_id, bid_amount, status, created_at`

func scanBid(row scanner) (model.Bid, error) {
	var b model.Bid
	var status string
	err := row.Scan(&b.ID, &b.AuctionID, &b.BidderID, &b.BidAmount, &status, &b.CreatedAt)
	b.Status = model.BidStatus(status)
	return b, err
}

func (r *PostgresRepo) queryAuctions(ctx context.Context, query string, args ...any) ([]model.Auction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) queryBids(ctx context.Context, query string, args ...any) ([]model.Bid, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateAuction inserts a new auction row
func (r *PostgresRepo) CreateAuction(ctx context.Context, auction model.Auction) (model.Auction, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO auctions (product_id, seller_id, start_price, current_highest_bid, highest_bidder_id,
		                      start_time, end_time, status, total_bids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+auctionColumns,
		auction.ProductID, auction.SellerID, auction.StartPrice, auction.CurrentHighestBid, auction.HighestBidderID,
		auction.StartTime, auction.EndTime, string(auction.Status), auction.TotalBids,
	)
	created, err := scanAuction(row)
	if err != nil {
		return model.Auction{}, fmt.Errorf("create auction for product %d: %w", auction.ProductID, err)
	}
	return created, nil
}

// GetAuctionByID returns nil, nil when the auction does not exist
func (r *PostgresRepo) GetAuctionByID(ctx context.Context, auctionID int64) (*model.Auction, error) {
	a, err := scanAuction(r.pool.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, auctionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get auction %d: %w", auctionID, err)
	}
	return &a, nil
}

// GetActiveAuctions lists active auctions ordered by end time
func (r *PostgresRepo) GetActiveAuctions(ctx context.Context, liveAt *time.Time) ([]model.Auction, error) {
	var (
		auctions []model.Auction
		err      error
	)
	if liveAt == nil {
		auctions, err = r.queryAuctions(ctx, `
			SELECT `+auctionColumns+` FROM auctions
			WHERE status = 'active'
			ORDER BY end_time, id`)
	} else {
		auctions, err = r.queryAuctions(ctx, `
			SELECT `+auctionColumns+` FROM auctions
			WHERE status = 'active' AND end_time > $1
			ORDER BY end_time, id`, *liveAt)
	}
	if err != nil {
		return nil, fmt.Errorf("get active auctions: %w", err)
	}
	return auctions, nil
}

// GetExpiredAuctions lists active auctions whose end time has passed
func (r *PostgresRepo) GetExpiredAuctions(ctx context.Context, now time.Time) ([]model.Auction, error) {
	auctions, err := r.queryAuctions(ctx, `
		SELECT `+auctionColumns+` FROM auctions
		WHERE status = 'active' AND end_time <= $1
		ORDER BY end_time, id`, now)
	if err != nil {
		return nil, fmt.Errorf("get expired auctions: %w", err)
	}
	return auctions, nil
}

// RecordBid accepts a bid with a conditional update on the auction row. Concurrent
// writers on the same auction serialize on the row lock taken by the UPDATE; the loser
// re-evaluates the WHERE clause against the committed row and affects zero rows.
func (r *PostgresRepo) RecordBid(ctx context.Context, bid model.Bid, observedHighest int64, now time.Time) (model.Bid, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE auctions
		SET current_highest_bid = $1, highest_bidder_id = $2, total_bids = total_bids + 1, updated_at = $3
		WHERE id = $4 AND status = 'active' AND end_time > $3 AND current_highest_bid = $5`,
		bid.BidAmount, bid.BidderID, now, bid.AuctionID, observedHighest)
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid for auction %d: update auction: %w", bid.AuctionID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM auctions WHERE id = $1)`, bid.AuctionID).Scan(&exists); err != nil {
			return model.Bid{}, fmt.Errorf("record bid for auction %d: %w", bid.AuctionID, err)
		}
		if !exists {
			return model.Bid{}, fmt.Errorf("record bid for auction %d: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
		}
		return model.Bid{}, fmt.Errorf("record bid for auction %d: %w", bid.AuctionID, auctionerrors.ErrStaleAuction)
	}

	if _, err := tx.Exec(ctx, `UPDATE bids SET status = 'outbid' WHERE auction_id = $1 AND status = 'active'`, bid.AuctionID); err != nil {
		return model.Bid{}, fmt.Errorf("record bid for auction %d: outbid previous: %w", bid.AuctionID, err)
	}

	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = now
	}
	inserted, err := scanBid(tx.QueryRow(ctx, `
		INSERT INTO bids (auction_id, bidder_id, bid_amount, status, created_at)
		VALUES ($1, $2, $3, 'active', $4)
		RETURNING `+bidColumns,
		bid.AuctionID, bid.BidderID, bid.BidAmount, bid.CreatedAt))
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid for auction %d: insert bid: %w", bid.AuctionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Bid{}, fmt.Errorf("record bid for auction %d: commit: %w", bid.AuctionID, err)
	}
	return inserted, nil
}

// GetBidsByAuctionID returns the bid history of an auction, oldest first
func (r *PostgresRepo) GetBidsByAuctionID(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	bids, err := r.queryBids(ctx, `
		SELECT `+bidColumns+` FROM bids
		WHERE auction_id = $1
		ORDER BY created_at, id`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

// GetUserBids returns the bids placed by a user, newest first
func (r *PostgresRepo) GetUserBids(ctx context.Context, bidderID int64) ([]model.Bid, error) {
	bids, err := r.queryBids(ctx, `
		SELECT `+bidColumns+` FROM bids
		WHERE bidder_id = $1
		ORDER BY created_at DESC, id DESC`, bidderID)
	if err != nil {
		return nil, fmt.Errorf("get bids for user %d: %w", bidderID, err)
	}
	return bids, nil
}

// EndAuction transitions an active auction and finalizes its bids in one transaction
func (r *PostgresRepo) EndAuction(ctx context.Context, auctionID int64, status model.AuctionStatus) (model.Auction, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("end auction %d: begin transaction: %w", auctionID, err)
	}
	defer tx.Rollback(ctx)

	ended, err := scanAuction(tx.QueryRow(ctx, `
		UPDATE auctions SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'active' AND ($2 <> 'cancelled' OR total_bids = 0)
		RETURNING `+auctionColumns, auctionID, string(status)))
	if errors.Is(err, pgx.ErrNoRows) {
		current, err := scanAuction(tx.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, auctionID))
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Auction{}, false, fmt.Errorf("end auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		if err != nil {
			return model.Auction{}, false, fmt.Errorf("end auction %d: %w", auctionID, err)
		}
		return current, false, nil
	}
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("end auction %d: update status: %w", auctionID, err)
	}

	if status == model.AuctionEnded {
		_, err = tx.Exec(ctx, `
			UPDATE bids
			SET status = CASE WHEN bidder_id = $2 AND bid_amount = $3 THEN 'won' ELSE 'outbid' END
			WHERE auction_id = $1 AND status = 'active'`,
			auctionID, ended.HighestBidderID, ended.CurrentHighestBid)
	} else {
		_, err = tx.Exec(ctx, `UPDATE bids SET status = 'outbid' WHERE auction_id = $1 AND status = 'active'`, auctionID)
	}
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("end auction %d: finalize bids: %w", auctionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Auction{}, false, fmt.Errorf("end auction %d: commit: %w", auctionID, err)
	}
	return ended, true, nil
}

// GetProductByID returns nil, nil when the product does not exist
func (r *PostgresRepo) GetProductByID(ctx context.Context, productID int64) (*model.Product, error) {
	var p model.Product
	err := r.pool.QueryRow(ctx, `SELECT id, seller_id, name, price, status FROM products WHERE id = $1`, productID).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	return &p, nil
}

// GetUserByID returns nil, nil when the user does not exist
func (r *PostgresRepo) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `SELECT id, name, seller_name FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &u.Name, &u.SellerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return &u, nil
}
