package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email address is already in use")
	ErrKeywordRequired    = errors.New("keyword parameter is required")
)
