package ports

import (
	"context"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

// AuditRepository persists auth events to the audit trail collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
