package ports

import (
	"context"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

// UserUpdate carries the mutable account fields for an update. Empty fields
// are left untouched; in particular an empty Password means the stored hash
// is preserved as-is and never re-hashed.
type UserUpdate struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// UserRepository is the credential store: persistence of account records and
// lookup by identifier or email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
