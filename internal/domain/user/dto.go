package user

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest for POST /user
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,max=100"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	IsActive  *bool  `json:"is_active"`
}

// RegisterResponse returned after registration
type RegisterResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// UserResponse represents user in API response
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

// UserResponseFromEntity converts entity to response
func UserResponseFromEntity(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// UserResponsesFromEntities converts a page of users
func UserResponsesFromEntities(users []*User) []*UserResponse {
	items := make([]*UserResponse, len(users))
	for i, u := range users {
		items[i] = UserResponseFromEntity(u)
	}
	return items
}
