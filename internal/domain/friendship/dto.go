package friendship

import (
	"time"

	"github.com/google/uuid"
)

// SendRequest for POST /friendship/send-request
type SendRequest struct {
	Recipient string `json:"recipient"`
}

// RespondRequest for POST /friendship/respond-request
type RespondRequest struct {
	RequestID string `json:"request_id"`
	Action    string `json:"action"`
}

// FriendRequestResponse represents a request in API responses and realtime events
type FriendRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Status      Status    `json:"status"`
	CreatedAt   string    `json:"created_at"`
}

// NewFriendRequestResponse converts entity to response
func NewFriendRequestResponse(r *FriendRequest) *FriendRequestResponse {
	return &FriendRequestResponse{
		ID:          r.ID,
		SenderID:    r.SenderID,
		RecipientID: r.RecipientID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// ActionResponse is returned by send and respond
type ActionResponse struct {
	Message       string                 `json:"message"`
	FriendRequest *FriendRequestResponse `json:"friend_request"`
}

// PendingRequestResponse represents a pending request with both parties
type PendingRequestResponse struct {
	ID        uuid.UUID   `json:"id"`
	Sender    UserSummary `json:"sender"`
	Recipient UserSummary `json:"recipient"`
	Status    Status      `json:"status"`
	CreatedAt string      `json:"created_at"`
}

// PendingResponsesFromEntities converts a page of pending requests
func PendingResponsesFromEntities(items []*PendingRequest) []*PendingRequestResponse {
	out := make([]*PendingRequestResponse, len(items))
	for i, p := range items {
		out[i] = &PendingRequestResponse{
			ID:        p.ID,
			Sender:    p.Sender,
			Recipient: p.Recipient,
			Status:    p.Status,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}
