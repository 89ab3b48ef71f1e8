package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/platformlab/accounts-api/internal/core/domain"
	"github.com/platformlab/accounts-api/internal/core/ports"
)

type stubUserRepo struct {
	seq     int
	users   map[string]*domain.User
	updates []ports.UserUpdate
	failAll error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates = append(r.updates, update)
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.Role != "" {
		u.Role = update.Role
	}
	if update.PasswordHash != "" {
		u.PasswordHash = update.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.failAll != nil {
		return r.failAll
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubResetStore struct {
	tokens map[string]string
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{tokens: make(map[string]string)}
}

func (s *stubResetStore) Save(_ context.Context, tokenHash, userID string) error {
	s.tokens[tokenHash] = userID
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, tokenHash string) (string, error) {
	userID, ok := s.tokens[tokenHash]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(s.tokens, tokenHash)
	return userID, nil
}

type stubTrail struct {
	events []domain.AuthEvent
}

func (s *stubTrail) Record(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

func newAuthService(repo *stubUserRepo, resets ResetTokenStore, trail ports.AuditTrail) *AuthService {
	hasher := NewHasher(bcrypt.MinCost)
	tokens := NewTokenManager("secret", time.Hour)
	return NewAuthService(repo, hasher, tokens, resets, trail, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	trail := &stubTrail{}
	svc := newAuthService(repo, newStubResetStore(), trail)

	token, user, err := svc.Register(context.Background(), "Alice", "Alice@Example.COM", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}

	claims, err := NewTokenManager("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if claims.ID != user.ID || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if len(trail.events) != 1 || trail.events[0].Action != domain.ActionRegistered {
		t.Fatalf("expected registered audit event, got %+v", trail.events)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubResetStore(), &stubTrail{})

	if _, _, err := svc.Register(context.Background(), "", "a@example.com", "pass123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty name, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bob", "b@example.com", "short"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for short password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubResetStore(), &stubTrail{})

	if _, _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "pass456"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	trail := &stubTrail{}
	svc := newAuthService(repo, newStubResetStore(), trail)

	if _, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "CAROL@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	last := trail.events[len(trail.events)-1]
	if last.Action != domain.ActionLoginOK {
		t.Fatalf("expected login_succeeded event, got %s", last.Action)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	trail := &stubTrail{}
	svc := newAuthService(repo, newStubResetStore(), trail)

	_, _, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	last := trail.events[len(trail.events)-1]
	if last.Action != domain.ActionLoginFailed {
		t.Fatalf("expected login_failed event, got %s", last.Action)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubResetStore(), &stubTrail{})

	// Unknown account and wrong password yield the same error.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	repo := newStubUserRepo()
	resets := newStubResetStore()
	svc := newAuthService(repo, resets, &stubTrail{})

	_, registered, err := svc.Register(context.Background(), "Erin", "erin@example.com", "oldpass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resetToken, err := svc.ForgotPassword(context.Background(), "erin@example.com")
	if err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if resetToken == "" {
		t.Fatalf("expected reset token")
	}
	if _, ok := resets.tokens[resetToken]; ok {
		t.Fatalf("raw token must not be stored, only its digest")
	}

	loginToken, user, err := svc.ResetPassword(context.Background(), resetToken, "newpass1")
	if err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("reset resolved wrong user: %s", user.ID)
	}
	if loginToken == "" {
		t.Fatalf("expected fresh login token")
	}

	if _, _, err := svc.Login(context.Background(), "erin@example.com", "oldpass1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "erin@example.com", "newpass1"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}

	// Single use: a second consume of the same token fails.
	if _, _, err := svc.ResetPassword(context.Background(), resetToken, "another1"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubResetStore(), &stubTrail{})

	if _, err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ResetPassword_ShortPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubResetStore(), &stubTrail{})

	if _, _, err := svc.ResetPassword(context.Background(), "whatever", "short"); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
