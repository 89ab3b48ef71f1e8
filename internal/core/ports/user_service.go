package ports

import (
	"context"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

// CreateUserInput is the DTO for admin user creation. Role defaults to
// domain.RoleUser when empty.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries optional fields for an admin update. Empty fields
// are not modified; an empty Password skips re-hashing entirely.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService is the admin-facing account CRUD.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
