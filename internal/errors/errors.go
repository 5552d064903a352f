package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a document lookup matches nothing.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when a path id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("Invalid ID format")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("User with the same email already exists")
	// ErrInvalidPassword is returned on a login password mismatch.
	ErrInvalidPassword = errors.New("Invalid password")
	// ErrMissingPassword is returned when the stored account has no password hash.
	ErrMissingPassword = errors.New("User password is missing")
	// ErrNotApproved is returned when a non-admin account is still pending review.
	ErrNotApproved = errors.New("Please wait until you are approved before attempting to access the system")
	// ErrInvalidOTP is returned when the supplied OTP does not match the stored one.
	ErrInvalidOTP = errors.New("Invalid OTP")
	// ErrBadCollection is returned when the collection query param is missing or
	// not allow-listed.
	ErrBadCollection = errors.New("Collection is required")
)

// MessageResponse is the standard non-validation error body.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusOf maps a domain error to its HTTP status code. Unrecognized
// errors are treated as internal failures.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrMissingPassword),
		errors.Is(err, ErrNotApproved):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrInvalidOTP),
		errors.Is(err, ErrBadCollection):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Is re-exports errors.Is so handler code doesn't need both packages.
func Is(err, target error) bool { return errors.Is(err, target) }
