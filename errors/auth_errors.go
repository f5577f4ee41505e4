// api/errors/auth_errors.go
package errors

var (
	ErrInvalidCredentials  = NewAuthenticationError("INVALID_CREDENTIALS", "invalid email or password")
	ErrAccountInactive     = NewAuthenticationError("ACCOUNT_INACTIVE", "account is inactive")
	ErrAccountLocked       = NewRateLimitError("ACCOUNT_LOCKED", "too many failed login attempts, try again later")
	ErrInvalidRefreshToken = NewAuthenticationError("INVALID_REFRESH_TOKEN", "invalid refresh token")
	ErrExpiredRefreshToken = NewAuthenticationError("EXPIRED_REFRESH_TOKEN", "refresh token expired")
	ErrInvalidAccessToken  = NewAuthenticationError("INVALID_ACCESS_TOKEN", "invalid or expired access token")
	ErrUnauthorized        = NewAuthenticationError("UNAUTHORIZED", "authentication required")
	ErrForbidden           = NewForbiddenError("FORBIDDEN", "insufficient permissions for this operation")
	ErrWeakPassword        = NewValidationError("WEAK_PASSWORD", "password must have at least 8 characters including upper and lower case letters, a digit and a special character")
	ErrRateLimitExceeded   = NewRateLimitError("RATE_LIMIT_EXCEEDED", "rate limit exceeded")
)
