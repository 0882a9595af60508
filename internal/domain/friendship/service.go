package friendship

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
	"github.com/friendgraph/friendgraph-api/internal/pkg/logger"
)

// Realtime event types
const (
	EventRequestReceived = "friend_request_received"
	EventRequestAccepted = "friend_request_accepted"
	EventRequestRejected = "friend_request_rejected"
)

// UserLookup resolves recipients by username
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Notifier pushes realtime events to a user's connections
type Notifier interface {
	Publish(ctx context.Context, userID uuid.UUID, eventType string, payload interface{}) error
}

// Service implements the friend request workflow
type Service struct {
	repo     Repository
	users    UserLookup
	limiter  *Limiter
	notifier Notifier // nil disables realtime events
	now      func() time.Time
}

// NewService creates friendship service
func NewService(repo Repository, users UserLookup, limiter *Limiter, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		limiter:  limiter,
		notifier: notifier,
		now:      time.Now,
	}
}

// SendRequest creates a pending request from senderID to the user named recipient
func (s *Service) SendRequest(ctx context.Context, senderID uuid.UUID, recipient string) (*FriendRequest, error) {
	recipient = user.NormalizeUsername(recipient)
	if recipient == "" {
		return nil, ErrRecipientRequired
	}

	to, err := s.users.GetByUsername(ctx, recipient)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if to.ID == senderID {
		return nil, ErrSelfRequest
	}

	now := s.now()
	decision, err := s.limiter.Allow(ctx, senderID, now)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &RateLimitError{RetryAfter: decision.RetryAfter}
	}

	req, err := s.repo.Create(ctx, &FriendRequest{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: to.ID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("request_id", req.ID.String()).
		Str("sender_id", senderID.String()).
		Str("recipient_id", to.ID.String()).
		Msg("Friend request sent")

	s.notify(ctx, req.RecipientID, EventRequestReceived, req)
	return req, nil
}

// RespondRequest lets the recipient accept or reject a request.
// Responding again after a final answer overwrites it.
func (s *Service) RespondRequest(ctx context.Context, callerID uuid.UUID, requestID, action string) (*FriendRequest, error) {
	if requestID == "" || action == "" {
		return nil, ErrRespondParamsRequired
	}

	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RecipientID != callerID {
		return nil, ErrNotRecipient
	}

	status, ok := Action(action).Status()
	if !ok {
		return nil, ErrInvalidAction
	}

	updated, err := s.repo.UpdateStatus(ctx, req.ID, status, s.now())
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("request_id", updated.ID.String()).
		Str("status", string(updated.Status)).
		Msg("Friend request answered")

	event := EventRequestAccepted
	if status == StatusRejected {
		event = EventRequestRejected
	}
	s.notify(ctx, updated.SenderID, event, updated)
	return updated, nil
}

// ListFriends returns one page of users with an accepted request to or from userID
func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*user.User, int, error) {
	return s.repo.ListFriends(ctx, userID, limit, offset)
}

// ListPending returns one page of requests waiting for userID, newest first
func (s *Service) ListPending(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*PendingRequest, int, error) {
	return s.repo.ListPending(ctx, userID, limit, offset)
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, eventType string, req *FriendRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, userID, eventType, NewFriendRequestResponse(req)); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("event", eventType).Msg("Failed to publish realtime event")
	}
}
