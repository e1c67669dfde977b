package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login and the current-user lookup.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	adminKey string
	logger   zerolog.Logger
}

// NewAuthService wires the service. An empty adminKey disables ADMIN
// self-registration entirely.
func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, adminKey string, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, adminKey: adminKey, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "name and email are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.NewError(domain.ErrInvalidInput, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	role := domain.RoleUser
	if strings.TrimSpace(in.Role) != "" {
		parsed, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, domain.NewError(domain.ErrInvalidInput, "role must be USER or ADMIN")
		}
		role = parsed
	}

	// A bad admin key must be rejected before the email lookup: the answer
	// may not reveal whether an email is registered.
	if role == domain.RoleAdmin && !s.adminKeyMatches(in.AdminKey) {
		s.logger.Warn().Str("email", email).Msg("admin registration rejected")
		return nil, domain.ErrInvalidAdminKey
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Me returns the stored record of the calling user.
func (s *AuthService) Me(ctx context.Context, id *domain.Identity) (*domain.User, error) {
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.users.FindByID(ctx, id.UserID)
}

func (s *AuthService) adminKeyMatches(given string) bool {
	if s.adminKey == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.adminKey), []byte(given)) == 1
}

// IdentityResolver verifies a bearer token and loads the user it names.
type IdentityResolver struct {
	tokens ports.TokenVerifier
	users  ports.UserRepository
}

func NewIdentityResolver(tokens ports.TokenVerifier, users ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve returns the token verification error unchanged, or
// domain.ErrUserNotFound when the subject no longer exists. The role of the
// stored user wins over the role claim.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.FindByEmail(ctx, domain.NormalizeEmail(claims.Subject))
	if err != nil {
		return nil, err
	}
	return &domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// UserService exposes the account list to administrators.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
