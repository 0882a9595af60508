package auth

import (
	"errors"
	"net/http"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
	"github.com/friendgraph/friendgraph-api/internal/middleware"
	"github.com/friendgraph/friendgraph-api/internal/pkg/errorhandler"
	"github.com/friendgraph/friendgraph-api/internal/pkg/logger"
	"github.com/friendgraph/friendgraph-api/internal/pkg/response"
	"github.com/friendgraph/friendgraph-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /auth/login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=TokenPair}
// @Failure 400,500 {object} response.Response
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	pair, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if msg, ok := clientMessage(err); ok {
			errorhandler.HandleError(r.Context(), w, http.StatusBadRequest, "AUTHENTICATION_FAILED", msg, err)
			return
		}
		errorhandler.HandleInternal(r.Context(), w, "failed to log in", err)
		return
	}

	response.OK(w, pair)
}

// Refresh handles POST /auth/refresh
// @Summary Exchange a refresh token for a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response{data=AccessTokenResponse}
// @Failure 400,500 {object} response.Response
// @Router /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	result, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		if msg, ok := clientMessage(err); ok {
			errorhandler.HandleError(r.Context(), w, http.StatusBadRequest, "AUTHENTICATION_FAILED", msg, err)
			return
		}
		errorhandler.HandleInternal(r.Context(), w, "failed to refresh token", err)
		return
	}

	response.OK(w, result)
}

// Logout handles POST /auth/logout
// @Summary Revoke a refresh token
// @Tags Auth
// @Accept json
// @Security BearerAuth
// @Param request body RefreshRequest true "Refresh token"
// @Success 204
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	_ = response.DecodeJSON(r.Body, &req)

	if err := h.service.Logout(r.Context(), req.Refresh); err != nil {
		// Logout always succeeds for the client
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to revoke refresh token")
	}

	response.NoContent(w)
}

// Me handles GET /auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=user.UserResponse}
// @Failure 401,404 {object} response.Response
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.HandleInternal(r.Context(), w, "failed to load current user", err)
		return
	}

	response.OK(w, user.UserResponseFromEntity(u))
}
