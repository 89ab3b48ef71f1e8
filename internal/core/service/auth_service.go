package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/platformlab/accounts-api/internal/core/domain"
	"github.com/platformlab/accounts-api/internal/core/ports"
)

const minPasswordLength = 6

// ResetTokenStore abstracts the ephemeral password-reset token store (Redis).
// Consume must remove the token so it cannot be replayed.
type ResetTokenStore interface {
	Save(ctx context.Context, tokenHash, userID string) error
	Consume(ctx context.Context, tokenHash string) (string, error)
}

// AuthService implements registration, login, and password reset.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	resets ResetTokenStore
	trail  ports.AuditTrail
	log    zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	resets ResetTokenStore,
	trail ports.AuditTrail,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		resets: resets,
		trail:  trail,
		log:    log,
	}
}

// Register creates a new account with the default role and returns a signed
// login token alongside the stored user.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if name == "" || email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.record(domain.AuthEvent{UserID: created.ID, Email: created.Email, Action: domain.ActionRegistered})
	return token, created, nil
}

// Login verifies the password for the account behind email and issues a
// fresh token. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(domain.AuthEvent{UserID: user.ID, Email: user.Email, Action: domain.ActionLoginFailed})
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.record(domain.AuthEvent{UserID: user.ID, Email: user.Email, Action: domain.ActionLoginOK})
	return token, user, nil
}

// ForgotPassword generates a single-use reset token for the account behind
// email. Only a digest of the token is stored; the raw value is handed back
// to the caller for delivery out of band.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, hashResetToken(token), user.ID); err != nil {
		return "", fmt.Errorf("save reset token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return token, nil
}

// ResetPassword consumes a reset token, stores the new password hash, and
// returns a fresh login token.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, *domain.User, error) {
	if len(newPassword) < minPasswordLength {
		return "", nil, domain.ErrValidation
	}

	userID, err := s.resets.Consume(ctx, hashResetToken(resetToken))
	if err != nil {
		return "", nil, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Update(ctx, userID, ports.UserUpdate{PasswordHash: hash})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.record(domain.AuthEvent{UserID: user.ID, Email: user.Email, Action: domain.ActionPasswordReset})
	return token, user, nil
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.trail == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.trail.Record(event)
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
