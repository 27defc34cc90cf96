package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/ports"
)

// AuthService implements sign-up, log-in and the account status operations.
type AuthService struct {
	users       ports.UserRepository
	credentials *Credentials
	logger      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, credentials *Credentials, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, credentials: credentials, logger: logger}
}

func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	hash, err := s.credentials.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       domain.DefaultStatus,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
				{Field: "email", Message: "email exists already, please pick a different one"},
			}}
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

// LogIn verifies the credentials and issues a bearer token. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials so callers cannot
// probe which of the two was wrong.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", err
	}

	if !s.credentials.VerifyPassword(password, user.PasswordHash) {
		return "", "", domain.ErrInvalidCredentials
	}

	token, err := s.credentials.IssueToken(user.Email, user.ID)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}

	return token, user.ID, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateStatus(ctx context.Context, userID, status string) (*domain.User, error) {
	if status == "" {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "status", Message: "status must not be empty"},
		}}
	}

	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}
