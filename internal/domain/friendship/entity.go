package friendship

import (
	"time"

	"github.com/google/uuid"
)

// Status of a friend request
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Action a recipient can take on a request
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// Status returns the status an action moves a request into
func (a Action) Status() (Status, bool) {
	switch a {
	case ActionAccept:
		return StatusAccepted, true
	case ActionReject:
		return StatusRejected, true
	}
	return "", false
}

// FriendRequest is one directed request between two users (matches friend_requests table).
// A pair of users are friends when a request between them in either direction is accepted.
type FriendRequest struct {
	ID          uuid.UUID `db:"id"`
	SenderID    uuid.UUID `db:"sender_id"`
	RecipientID uuid.UUID `db:"recipient_id"`
	Status      Status    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// UserSummary is the public part of a user shown next to a request
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// PendingRequest is a request awaiting the recipient, with both parties expanded
type PendingRequest struct {
	FriendRequest
	Sender    UserSummary
	Recipient UserSummary
}
