package ports

import (
	"context"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

// AuditTrail accepts auth events for asynchronous recording. Record must not
// block the request path.
type AuditTrail interface {
	Record(event domain.AuthEvent)
}

// AuditService persists a single auth event; invoked by the dispatcher
// workers, never directly from a handler.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
