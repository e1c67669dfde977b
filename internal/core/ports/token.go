package ports

import "github.com/Mukta-28/Movie-Review-Project/internal/core/domain"

// TokenIssuer mints signed, time-limited credentials.
type TokenIssuer interface {
	Issue(subjectEmail string, role domain.Role) (string, error)
}

// TokenVerifier checks a credential and decodes its claims. Failures are one
// of domain.ErrMalformedToken, domain.ErrInvalidSignature or domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
