package ports

import (
	"context"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// RegisterInput carries a registration request. AdminKey is only consulted
// when the requested role is ADMIN.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	AdminKey string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService handles account creation and password login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, id *domain.Identity) (*domain.User, error)
}

// IdentityResolver turns a bearer token into the identity of a live user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
}

// UserService lists accounts for administrators.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
}
