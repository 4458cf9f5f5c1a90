package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// newTestPostgresRepo connects to TEST_DATABASE_URL and skips the test when it is unset
func newTestPostgresRepo(t *testing.T) (*PostgresRepo, *pgxpool.Pool) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewPostgresRepo(pool)
	require.NoError(t, repo.Migrate(ctx))
	return repo, pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `INSERT INTO users (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertProduct(t *testing.T, pool *pgxpool.Pool, sellerID int64, name string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (seller_id, name, price) VALUES ($1, $2, $3) RETURNING id`, sellerID, name, 1000).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPostgresRepo_BidLifecycle(t *testing.T) {
	repo, pool := newTestPostgresRepo(t)
	ctx := context.Background()

	seller := insertUser(t, pool, "seller")
	alice := insertUser(t, pool, "alice")
	bob := insertUser(t, pool, "bob")
	product := insertProduct(t, pool, seller, "brass lamp")

	start := time.Now().UTC().Truncate(time.Microsecond)
	auction, err := repo.CreateAuction(ctx, model.Auction{
		ProductID:         product,
		SellerID:          seller,
		StartPrice:        100000,
		CurrentHighestBid: 100000,
		StartTime:         start,
		EndTime:           start.Add(24 * time.Hour),
		Status:            model.AuctionActive,
	})
	require.NoError(t, err)
	require.NotZero(t, auction.ID)

	_, err = repo.RecordBid(ctx, model.Bid{AuctionID: auction.ID, BidderID: alice, BidAmount: 150000}, 100000, time.Now().UTC())
	require.NoError(t, err)

	_, err = repo.RecordBid(ctx, model.Bid{AuctionID: auction.ID, BidderID: bob, BidAmount: 160000}, 100000, time.Now().UTC())
	require.ErrorIs(t, err, auctionerrors.ErrStaleAuction)

	_, err = repo.RecordBid(ctx, model.Bid{AuctionID: auction.ID, BidderID: bob, BidAmount: 350000}, 150000, time.Now().UTC())
	require.NoError(t, err)

	_, err = repo.RecordBid(ctx, model.Bid{AuctionID: -1, BidderID: bob, BidAmount: 1}, 0, time.Now().UTC())
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

	got, err := repo.GetAuctionByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, int64(350000), got.CurrentHighestBid)
	require.Equal(t, bob, *got.HighestBidderID)
	require.Equal(t, 2, got.TotalBids)

	stillActive, transitioned, err := repo.EndAuction(ctx, auction.ID, model.AuctionCancelled)
	require.NoError(t, err)
	require.False(t, transitioned)
	require.Equal(t, model.AuctionActive, stillActive.Status)

	ended, transitioned, err := repo.EndAuction(ctx, auction.ID, model.AuctionEnded)
	require.NoError(t, err)
	require.True(t, transitioned)
	require.Equal(t, model.AuctionEnded, ended.Status)

	_, transitioned, err = repo.EndAuction(ctx, auction.ID, model.AuctionEnded)
	require.NoError(t, err)
	require.False(t, transitioned)

	bids, err := repo.GetBidsByAuctionID(ctx, auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, model.BidOutbid, bids[0].Status)
	require.Equal(t, model.BidWon, bids[1].Status)

	_, err = repo.RecordBid(ctx, model.Bid{AuctionID: auction.ID, BidderID: alice, BidAmount: 400000}, 350000, time.Now().UTC())
	require.ErrorIs(t, err, auctionerrors.ErrStaleAuction)

	mine, err := repo.GetUserBids(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestPostgresRepo_ConcurrentBids(t *testing.T) {
	repo, pool := newTestPostgresRepo(t)
	ctx := context.Background()

	seller := insertUser(t, pool, "seller")
	product := insertProduct(t, pool, seller, "rug")
	bidders := make([]int64, 20)
	for i := range bidders {
		bidders[i] = insertUser(t, pool, "bidder")
	}

	start := time.Now().UTC()
	auction, err := repo.CreateAuction(ctx, model.Auction{
		ProductID: product, SellerID: seller, StartPrice: 1000, CurrentHighestBid: 1000,
		StartTime: start, EndTime: start.Add(12 * time.Hour), Status: model.AuctionActive,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i, bidder := range bidders {
		wg.Add(1)
		i, bidder := i, bidder
		go func() {
			defer wg.Done()
			_, err := repo.RecordBid(ctx, model.Bid{AuctionID: auction.ID, BidderID: bidder, BidAmount: int64(2000 + i)}, 1000, time.Now().UTC())
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, accepted)
	bids, err := repo.GetBidsByAuctionID(ctx, auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, model.BidActive, bids[0].Status)
}

func TestPostgresRepo_Conversations(t *testing.T) {
	repo, pool := newTestPostgresRepo(t)
	ctx := context.Background()

	seller := insertUser(t, pool, "seller")
	buyer := insertUser(t, pool, "buyer")
	product := insertProduct(t, pool, seller, "beads")

	conv, created, err := repo.GetOrCreateConversation(ctx, model.Conversation{BuyerID: buyer, SellerID: seller, ProductID: &product})
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := repo.GetOrCreateConversation(ctx, model.Conversation{BuyerID: buyer, SellerID: seller, ProductID: &product})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, conv.ID, again.ID)

	_, err = repo.InsertMessage(ctx, model.Message{ConversationID: conv.ID, SenderID: buyer, ReceiverID: seller, Content: "salam"})
	require.NoError(t, err)

	unread, err := repo.CountUnread(ctx, conv.ID, seller)
	require.NoError(t, err)
	require.Equal(t, 1, unread)

	n, err := repo.MarkMessagesAsRead(ctx, conv.ID, seller)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	loaded, err := repo.GetConversationByID(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.LastMessageAt)

	_, err = repo.InsertMessage(ctx, model.Message{ConversationID: -1, SenderID: buyer, ReceiverID: seller, Content: "x"})
	require.ErrorIs(t, err, auctionerrors.ErrConversationNotFound)
}
