package friendship

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRecipientRequired     = errors.New("recipient parameter is required")
	ErrRecipientNotFound     = errors.New("recipient user does not exist")
	ErrSelfRequest           = errors.New("cannot send a friend request to yourself")
	ErrAlreadySent           = errors.New("friend request already sent")
	ErrTooManyRequests       = errors.New("too many friend requests")
	ErrRespondParamsRequired = errors.New("request id and action parameters are required")
	ErrRequestNotFound       = errors.New("friend request not found")
	ErrNotRecipient          = errors.New("only the recipient can respond to this friend request")
	ErrInvalidAction         = errors.New("invalid action")
)

// RateLimitError is returned when a sender exceeded the request window.
// It matches ErrTooManyRequests with errors.Is.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrTooManyRequests, e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrTooManyRequests
}
