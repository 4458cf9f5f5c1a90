package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"souq-market/internal/auctionerrors"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key under which the auth middleware stores the user ID
const CallerKey = "userID"

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err to a status, sends it and logs it at a level matching the status
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrConversationNotFound):
		return http.StatusNotFound, "conversation not found"
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "not found"

	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusForbidden, "sellers cannot bid on their own auction"
	case errors.Is(err, auctionerrors.ErrNotSeller):
		return http.StatusForbidden, "you are not the seller"
	case errors.Is(err, auctionerrors.ErrNotParticipant):
		return http.StatusForbidden, "you are not part of this conversation"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"

	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid must be higher than current highest bid"
	case errors.Is(err, auctionerrors.ErrInvalidDuration):
		return http.StatusBadRequest, "invalid auction duration"
	case errors.Is(err, auctionerrors.ErrInvalidPrice):
		return http.StatusBadRequest, "invalid start price"
	case errors.Is(err, auctionerrors.ErrEmptyMessage):
		return http.StatusBadRequest, "invalid message content"
	case errors.Is(err, auctionerrors.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid request"

	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusConflict, "auction has ended"
	case errors.Is(err, auctionerrors.ErrHasBids):
		return http.StatusConflict, "auction already has bids"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not active"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusConflict, "auction state changed, please retry"

	case errors.Is(err, auctionerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ParseIDParam reads a positive integer path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q is not a valid id", auctionerrors.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// CallerID returns the authenticated user ID set by the auth middleware
func CallerID(c *gin.Context) (int64, error) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return 0, auctionerrors.ErrUnauthenticated
	}
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, auctionerrors.ErrUnauthenticated
	}
	return id, nil
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
