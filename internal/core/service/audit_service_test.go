package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

type stubAuditRepo struct {
	inserted []domain.AuthEvent
	failErr  error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.inserted = append(r.inserted, *event)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{
		UserID:    "u1",
		Email:     "a@example.com",
		Action:    domain.ActionLoginOK,
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Action != domain.ActionLoginOK {
		t.Fatalf("unexpected inserts: %+v", repo.inserted)
	}
}

func TestAuditService_ProcessError(t *testing.T) {
	boom := errors.New("write failed")
	svc := NewAuditService(&stubAuditRepo{failErr: boom}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuthEvent{UserID: "u1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
