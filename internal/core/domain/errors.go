package domain

import "errors"

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch on the kind with errors.Is without knowing the concrete variant.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Token verification failures. They never reach the client: the request
// authenticator downgrades them to an anonymous request.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// Error is a domain failure with a client-safe message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds a domain error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrUserNotFound   = NewError(ErrNotFound, "user not found")
	ErrMovieNotFound  = NewError(ErrNotFound, "movie not found")
	ErrReviewNotFound = NewError(ErrNotFound, "review not found")

	ErrDuplicateEmail = NewError(ErrConflict, "email already in use")
	ErrMovieExists    = NewError(ErrConflict, "a movie with this title already exists")
	ErrMovieInUse     = NewError(ErrConflict, "cannot delete movie: there are dependent records")

	ErrInvalidAdminKey = NewError(ErrForbidden, "invalid admin secret key")
)
