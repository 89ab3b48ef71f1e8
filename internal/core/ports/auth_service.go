package ports

import (
	"context"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

// AuthService implements registration, login, and the password reset flow.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (string, *domain.User, error)
}
