package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Posts = append([]string(nil), u.Posts...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id, status string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) AddPost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (r *stubUserRepo) RemovePost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Posts[:0]
	for _, id := range u.Posts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.Posts = kept
	return nil
}

func newTestAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, NewCredentials("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_SignUp_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "tester1",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned user id")
	}
	if user.Status != domain.DefaultStatus {
		t.Fatalf("unexpected status: %q", user.Status)
	}
	if user.PasswordHash == "tester1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("tester1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := []struct {
		name  string
		input ports.SignUpInput
		field string
	}{
		{"short name", ports.SignUpInput{Name: "A", Email: "a@example.com", Password: "tester1"}, "name"},
		{"bad email", ports.SignUpInput{Name: "Alice", Email: "not-an-email", Password: "tester1"}, "email"},
		{"short password", ports.SignUpInput{Name: "Alice", Email: "a@example.com", Password: "ab1"}, "password"},
		{"non-alphanumeric password", ports.SignUpInput{Name: "Alice", Email: "a@example.com", Password: "pass word!"}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tc.input)
			ve, ok := domain.AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			found := false
			for _, v := range ve.Violations {
				if v.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected violation on %q, got %+v", tc.field, ve.Violations)
			}
		})
	}
}

func TestAuthService_SignUp_ValidationCollectsAllFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, err := svc.SignUp(context.Background(), ports.SignUpInput{})
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Violations) != 3 {
		t.Fatalf("expected 3 violations, got %+v", ve.Violations)
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	input := ports.SignUpInput{Name: "Alice", Email: "alice@example.com", Password: "tester1"}

	if _, err := svc.SignUp(context.Background(), input); err != nil {
		t.Fatalf("first SignUp failed: %v", err)
	}

	input.Name = "Alicia"
	_, err := svc.SignUp(context.Background(), input)
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0].Field != "email" {
		t.Fatalf("unexpected violations: %+v", ve.Violations)
	}
}

func TestAuthService_LogIn(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "tester1",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	token, userID, err := svc.LogIn(context.Background(), "alice@example.com", "tester1")
	if err != nil {
		t.Fatalf("LogIn returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if userID != created.ID {
		t.Fatalf("expected user id %q, got %q", created.ID, userID)
	}
}

func TestAuthService_LogIn_FailuresAreUniform(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Alice", Email: "alice@example.com", Password: "tester1",
	}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.LogIn(context.Background(), "nobody@example.com", "tester1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := svc.LogIn(context.Background(), "alice@example.com", "wrong1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAuthService_UpdateStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Alice", Email: "alice@example.com", Password: "tester1",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), created.ID, "shipping it")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != "shipping it" {
		t.Fatalf("unexpected status: %q", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), created.ID, ""); err == nil {
		t.Fatalf("expected validation error for empty status")
	} else if _, ok := domain.AsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}
