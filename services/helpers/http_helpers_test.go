package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"souq-market/internal/auctionerrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{err: auctionerrors.ErrAuctionNotFound, wantStatus: http.StatusNotFound},
		{err: fmt.Errorf("repo: %w", auctionerrors.ErrConversationNotFound), wantStatus: http.StatusNotFound},
		{err: auctionerrors.ErrSelfBid, wantStatus: http.StatusForbidden},
		{err: auctionerrors.ErrNotParticipant, wantStatus: http.StatusForbidden},
		{err: auctionerrors.ErrBidTooLow, wantStatus: http.StatusBadRequest},
		{err: auctionerrors.ErrInvalidDuration, wantStatus: http.StatusBadRequest},
		{err: auctionerrors.ErrSelfConversation, wantStatus: http.StatusBadRequest},
		{err: auctionerrors.ErrAuctionEnded, wantStatus: http.StatusConflict, wantMsg: "auction has ended"},
		{err: fmt.Errorf("lifecycle: auction 3 is ended: %w", auctionerrors.ErrAuctionNotActive), wantStatus: http.StatusConflict, wantMsg: "auction is not active"},
		{err: auctionerrors.ErrHasBids, wantStatus: http.StatusConflict, wantMsg: "auction already has bids"},
		{err: auctionerrors.ErrConflict, wantStatus: http.StatusConflict, wantMsg: "auction state changed, please retry"},
		{err: auctionerrors.ErrUnauthenticated, wantStatus: http.StatusUnauthorized},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		status, msg := MapErrorToHTTP(tc.err)
		require.Equal(t, tc.wantStatus, status, tc.err.Error())
		require.NotEmpty(t, msg)
		if tc.wantMsg != "" {
			require.Equal(t, tc.wantMsg, msg)
		}
	}
}

func TestParseIDParam(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "17", want: 17},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}

		id, err := ParseIDParam(c, "id")
		if tc.wantErr {
			require.ErrorIs(t, err, auctionerrors.ErrInvalidArgument, tc.raw)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.want, id)
	}
}

func TestCallerID(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := CallerID(c)
	require.ErrorIs(t, err, auctionerrors.ErrUnauthenticated)

	c.Set(CallerKey, "7")
	_, err = CallerID(c)
	require.ErrorIs(t, err, auctionerrors.ErrUnauthenticated)

	c.Set(CallerKey, int64(7))
	id, err := CallerID(c)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
}
