package ports

import (
	"context"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// IdentityResolver turns a bearer token into the user it was issued for.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
