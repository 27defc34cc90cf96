package ports

import (
	"context"

	"github.com/feedwire/feed-service/internal/core/domain"
)

// SignUpInput carries the fields of a sign-up request. Both facade surfaces
// bind into this struct so the validation rules live in exactly one place.
type SignUpInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,alphanum,min=5"`
}

// AuthService defines the account use cases shared by both facade surfaces.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	// LogIn verifies the credentials and returns a signed bearer token plus
	// the user id. Unknown email and wrong password fail identically with
	// domain.ErrInvalidCredentials.
	LogIn(ctx context.Context, email, password string) (token, userID string, err error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateStatus(ctx context.Context, userID, status string) (*domain.User, error)
}
