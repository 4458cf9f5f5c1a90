package auctionerrors

import (
	"errors"
	"fmt"
)

// Error classes surfaced to callers
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Repository-level errors
var (
	ErrAuctionNotFound      = fmt.Errorf("auction %w", ErrNotFound)
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrConversationNotFound = fmt.Errorf("conversation %w", ErrNotFound)

	// ErrStaleAuction is returned by a conditional write when the auction row no longer
	// matches the state the caller observed. It never leaves the bidding engine.
	ErrStaleAuction = errors.New("auction state changed since it was read")
)

// business logic errors
var (
	ErrInvalidPrice     = fmt.Errorf("%w: start price must be positive", ErrInvalidArgument)
	ErrInvalidDuration  = fmt.Errorf("%w: duration must be one of 12, 24, 36, 48, 72 hours", ErrInvalidArgument)
	ErrInvalidBid       = fmt.Errorf("%w: invalid bid", ErrInvalidArgument)
	ErrBidTooLow        = fmt.Errorf("%w: bid must be higher than current highest bid", ErrInvalidArgument)
	ErrEmptyMessage     = fmt.Errorf("%w: message content is empty or too long", ErrInvalidArgument)
	ErrSelfConversation = fmt.Errorf("%w: cannot start a conversation with yourself", ErrInvalidArgument)

	ErrNotSeller      = fmt.Errorf("%w: caller is not the seller", ErrForbidden)
	ErrSelfBid        = fmt.Errorf("%w: seller cannot bid on own auction", ErrForbidden)
	ErrNotParticipant = fmt.Errorf("%w: caller is not a participant of the conversation", ErrForbidden)

	ErrAuctionEnded     = fmt.Errorf("%w: auction has ended", ErrConflict)
	ErrAuctionNotActive = fmt.Errorf("%w: auction is not active", ErrConflict)
	ErrHasBids          = fmt.Errorf("%w: auction already has bids", ErrConflict)
)
