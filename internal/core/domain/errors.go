package domain

import "errors"

// Authentication failures. Each maps to a 401 with its own client message.
var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserGone           = errors.New("token user no longer exists")
	ErrPasswordChanged    = errors.New("password changed after token was issued")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

var (
	ErrForbidden           = errors.New("forbidden")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrProjectNotFound     = errors.New("project not found")
	ErrGalleryItemNotFound = errors.New("gallery item not found")
	ErrInvalidID           = errors.New("invalid identifier")
	ErrInvalidStatus       = errors.New("invalid project status")
	ErrStorageDisabled     = errors.New("image storage is not configured")

	// ErrSigningKeyMissing means no JWT secret was configured. It is never
	// shown to clients.
	ErrSigningKeyMissing = errors.New("jwt signing secret is not configured")
)
