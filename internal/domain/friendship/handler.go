package friendship

import (
	"errors"
	"net/http"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
	"github.com/friendgraph/friendgraph-api/internal/middleware"
	"github.com/friendgraph/friendgraph-api/internal/pkg/errorhandler"
	"github.com/friendgraph/friendgraph-api/internal/pkg/logger"
	"github.com/friendgraph/friendgraph-api/internal/pkg/pagination"
	"github.com/friendgraph/friendgraph-api/internal/pkg/response"
)

// Handler handles friendship HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates friendship handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SendRequest handles POST /friendship/send-request
// @Summary Send a friend request
// @Tags Friendship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendRequest true "Recipient username"
// @Success 201 {object} response.Response{data=ActionResponse}
// @Failure 400,404,429,500 {object} response.Response
// @Router /friendship/send-request [post]
func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	fr, err := h.service.SendRequest(r.Context(), middleware.GetUserID(r.Context()), req.Recipient)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, ActionResponse{
		Message:       "Friend request sent successfully",
		FriendRequest: NewFriendRequestResponse(fr),
	})
}

// RespondRequest handles POST /friendship/respond-request
// @Summary Accept or reject a friend request
// @Tags Friendship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RespondRequest true "Request id and action (accept|reject)"
// @Success 200 {object} response.Response{data=ActionResponse}
// @Failure 400,403,404,500 {object} response.Response
// @Router /friendship/respond-request [post]
func (h *Handler) RespondRequest(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	fr, err := h.service.RespondRequest(r.Context(), middleware.GetUserID(r.Context()), req.RequestID, req.Action)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	msg := "Friend request accepted"
	if fr.Status == StatusRejected {
		msg = "Friend request rejected"
	}
	response.OK(w, ActionResponse{Message: msg, FriendRequest: NewFriendRequestResponse(fr)})
}

// ListFriends handles GET /friendship/friends
// @Summary List friends
// @Tags Friendship
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} response.Response{data=[]user.UserResponse}
// @Failure 404,500 {object} response.Response
// @Router /friendship/friends [get]
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.FromRequest(r)
	if err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}

	friends, total, err := h.service.ListFriends(r.Context(), middleware.GetUserID(r.Context()), p.Limit(), p.Offset())
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, "failed to list friends", err)
		return
	}
	if err := p.Check(total); err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}

	response.WithMeta(w, user.UserResponsesFromEntities(friends), p.Meta(total))
}

// ListPending handles GET /friendship/pending-requests
// @Summary List pending friend requests sent to the caller
// @Tags Friendship
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} response.Response{data=[]PendingRequestResponse}
// @Failure 404,500 {object} response.Response
// @Router /friendship/pending-requests [get]
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.FromRequest(r)
	if err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}

	pending, total, err := h.service.ListPending(r.Context(), middleware.GetUserID(r.Context()), p.Limit(), p.Offset())
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, "failed to list pending requests", err)
		return
	}
	if err := p.Check(total); err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}

	response.WithMeta(w, PendingResponsesFromEntities(pending), p.Meta(total))
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var rateErr *RateLimitError
	switch {
	case errors.As(err, &rateErr):
		logger.FromContext(ctx).Warn().
			Str("user_id", middleware.GetUserID(ctx).String()).
			Dur("retry_after", rateErr.RetryAfter).
			Msg("Friend request rate limit exceeded")
		response.TooManyRequests(w, "Too many friend requests. Please try again later.", rateErr.RetryAfter)
	case errors.Is(err, ErrRecipientRequired):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "VALIDATION_ERROR", "Recipient parameter is required", err)
	case errors.Is(err, ErrRecipientNotFound):
		errorhandler.HandleError(ctx, w, http.StatusNotFound, "NOT_FOUND", "Recipient user does not exist", err)
	case errors.Is(err, ErrSelfRequest):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot send a friend request to yourself", err)
	case errors.Is(err, ErrAlreadySent):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "VALIDATION_ERROR", "Friend request already sent", err)
	case errors.Is(err, ErrRespondParamsRequired):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "VALIDATION_ERROR", "Request ID and action parameters are required", err)
	case errors.Is(err, ErrRequestNotFound):
		errorhandler.HandleError(ctx, w, http.StatusNotFound, "NOT_FOUND", "Friend request not found", err)
	case errors.Is(err, ErrNotRecipient):
		errorhandler.HandleError(ctx, w, http.StatusForbidden, "FORBIDDEN", "Only the recipient can respond to this friend request", err)
	case errors.Is(err, ErrInvalidAction):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid action", err)
	default:
		errorhandler.HandleInternal(ctx, w, "friend request failed", err)
	}
}
