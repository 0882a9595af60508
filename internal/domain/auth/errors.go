package auth

import "errors"

var (
	ErrUnknownEmail         = errors.New("user with this email does not exist")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrUserNotFound         = errors.New("user not found")
)

// clientMessages are the messages sent to clients for authentication failures
var clientMessages = map[error]string{
	ErrUnknownEmail:         "User with this email does not exist.",
	ErrAccountDisabled:      "Your account has been disabled",
	ErrInvalidCredentials:   "Please provide valid credentials",
	ErrRefreshTokenRequired: "Refresh token is required",
	ErrInvalidRefreshToken:  "Invalid Refresh token",
}

// clientMessage returns the client-facing message for err, if it is an auth failure
func clientMessage(err error) (string, bool) {
	for target, msg := range clientMessages {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}
