package user

import (
	"errors"
	"net/http"

	"github.com/friendgraph/friendgraph-api/internal/pkg/errorhandler"
	"github.com/friendgraph/friendgraph-api/internal/pkg/pagination"
	"github.com/friendgraph/friendgraph-api/internal/pkg/response"
	"github.com/friendgraph/friendgraph-api/internal/pkg/validator"
)

// Handler handles user HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /user
// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response{data=RegisterResponse}
// @Failure 400,500 {object} response.Response
// @Router /user [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.ValidationError(w, map[string]string{"email": "Email address is already in use"})
			return
		}
		errorhandler.HandleInternal(r.Context(), w, "failed to register user", err)
		return
	}

	response.Created(w, RegisterResponse{
		Message: "User registered successfully",
		User:    UserResponseFromEntity(u),
	})
}

// List handles GET /user
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} response.Response{data=[]UserResponse}
// @Failure 404,500 {object} response.Response
// @Router /user [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.FromRequest(r)
	if err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}

	users, total, err := h.service.List(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, "failed to list users", err)
		return
	}

	writePage(w, p, users, total)
}

// Search handles GET /user/search
// @Summary Search users by exact email or partial first name
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Email or part of first name"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} response.Response{data=[]UserResponse}
// @Failure 400,404,500 {object} response.Response
// @Router /user/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		response.BadRequest(w, "Keyword parameter is required")
		return
	}

	p, err := pagination.FromRequest(r)
	if err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}

	users, total, err := h.service.Search(r.Context(), keyword, p.Limit(), p.Offset())
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, "failed to search users", err)
		return
	}

	writePage(w, p, users, total)
}

func writePage(w http.ResponseWriter, p pagination.Params, users []*User, total int) {
	if err := p.Check(total); err != nil {
		response.NotFound(w, "Invalid page.")
		return
	}
	response.WithMeta(w, UserResponsesFromEntities(users), p.Meta(total))
}
