package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"

	"souq-market/internal/auctionerrors"
	model "souq-market/internal/models"
	"souq-market/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const (
	seller   int64 = 1
	buyer    int64 = 2
	stranger int64 = 3
	product  int64 = 10
)

func newTestService() (*Service, *repository.MemoryRepo) {
	repo := repository.NewMemoryRepo()
	repo.AddUser(model.User{ID: seller, Name: "Ali", SellerName: "Baghdad Antiques"})
	repo.AddUser(model.User{ID: buyer, Name: "Zainab"})
	repo.AddUser(model.User{ID: stranger, Name: "Omar"})
	repo.AddProduct(model.Product{ID: product, SellerID: seller, Name: "Dallah", Price: 100000})
	return NewService(repo, repo), repo
}

func productRef(id int64) *int64 { return &id }

func TestService_GetOrCreateConversation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		buyerID   int64
		sellerID  int64
		productID *int64
		wantErr   error
	}{
		{name: "about_product", buyerID: buyer, sellerID: seller, productID: productRef(product)},
		{name: "general", buyerID: buyer, sellerID: seller},
		{name: "with_self", buyerID: seller, sellerID: seller, wantErr: auctionerrors.ErrSelfConversation},
		{name: "missing_ids", buyerID: 0, sellerID: seller, wantErr: auctionerrors.ErrInvalidArgument},
		{name: "unknown_seller", buyerID: buyer, sellerID: 99, wantErr: auctionerrors.ErrUserNotFound},
		{name: "unknown_product", buyerID: buyer, sellerID: seller, productID: productRef(99), wantErr: auctionerrors.ErrProductNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestService()
			conv, err := svc.GetOrCreateConversation(context.Background(), tc.buyerID, tc.sellerID, tc.productID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, conv.ID)

			again, err := svc.GetOrCreateConversation(context.Background(), tc.buyerID, tc.sellerID, tc.productID)
			require.NoError(t, err)
			require.Equal(t, conv.ID, again.ID)
		})
	}
}

func TestService_SendAndRead(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, buyer, seller, productRef(product))
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, conv.ID, buyer, seller, "  is the dallah still available?  ")
	require.NoError(t, err)
	require.Equal(t, "is the dallah still available?", msg.Content)
	require.False(t, msg.IsRead)

	_, err = svc.SendMessage(ctx, conv.ID, seller, buyer, "yes")
	require.NoError(t, err)

	msgs, err := svc.GetConversationMessages(ctx, conv.ID, seller)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	inbox, err := svc.GetUserConversations(ctx, seller)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.Equal(t, buyer, inbox[0].OtherUser.ID)
	require.Equal(t, "Dallah", inbox[0].Product.Name)
	require.Equal(t, 1, inbox[0].UnreadCount)

	n, err := svc.MarkAsRead(ctx, conv.ID, seller)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	inbox, err = svc.GetUserConversations(ctx, seller)
	require.NoError(t, err)
	require.Zero(t, inbox[0].UnreadCount)

	buyerInbox, err := svc.GetUserConversations(ctx, buyer)
	require.NoError(t, err)
	require.Equal(t, seller, buyerInbox[0].OtherUser.ID)
	require.Equal(t, 1, buyerInbox[0].UnreadCount)
}

func TestService_SendMessage_Rejections(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()
	conv, err := svc.GetOrCreateConversation(ctx, buyer, seller, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		convID   int64
		sender   int64
		receiver int64
		content  string
		wantErr  error
	}{
		{name: "empty", convID: conv.ID, sender: buyer, receiver: seller, content: "   ", wantErr: auctionerrors.ErrEmptyMessage},
		{name: "too_long", convID: conv.ID, sender: buyer, receiver: seller, content: strings.Repeat("م", MaxMessageLength+1), wantErr: auctionerrors.ErrEmptyMessage},
		{name: "outsider_sender", convID: conv.ID, sender: stranger, receiver: seller, content: "hi", wantErr: auctionerrors.ErrNotParticipant},
		{name: "outsider_receiver", convID: conv.ID, sender: buyer, receiver: stranger, content: "hi", wantErr: auctionerrors.ErrNotParticipant},
		{name: "to_self", convID: conv.ID, sender: buyer, receiver: buyer, content: "hi", wantErr: auctionerrors.ErrNotParticipant},
		{name: "unknown_conversation", convID: 404, sender: buyer, receiver: seller, content: "hi", wantErr: auctionerrors.ErrConversationNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.SendMessage(ctx, tc.convID, tc.sender, tc.receiver, tc.content)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	// exactly at the limit is accepted
	_, err = svc.SendMessage(ctx, conv.ID, buyer, seller, strings.Repeat("م", MaxMessageLength))
	require.NoError(t, err)
}

func TestService_OutsiderCannotRead(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()
	conv, err := svc.GetOrCreateConversation(ctx, buyer, seller, nil)
	require.NoError(t, err)

	_, err = svc.GetConversationMessages(ctx, conv.ID, stranger)
	require.ErrorIs(t, err, auctionerrors.ErrNotParticipant)

	_, err = svc.MarkAsRead(ctx, conv.ID, stranger)
	require.ErrorIs(t, err, auctionerrors.ErrForbidden)

	inbox, err := svc.GetUserConversations(ctx, stranger)
	require.NoError(t, err)
	require.Empty(t, inbox)
}

func TestService_RepositoryErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	db := repository.NewMockMessageDB(ctrl)
	catalog := repository.NewMockCatalog(ctrl)
	svc := NewService(db, catalog)

	db.EXPECT().GetUserConversations(gomock.Any(), buyer).Return(nil, errors.New("connection refused"))
	_, err := svc.GetUserConversations(context.Background(), buyer)
	require.ErrorContains(t, err, "connection refused")

	db.EXPECT().GetConversationByID(gomock.Any(), int64(5)).Return(&model.Conversation{ID: 5, BuyerID: buyer, SellerID: seller}, nil)
	db.EXPECT().MarkMessagesAsRead(gomock.Any(), int64(5), buyer).Return(0, errors.New("connection refused"))
	_, err = svc.MarkAsRead(context.Background(), 5, buyer)
	require.Error(t, err)
}
