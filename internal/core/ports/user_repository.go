package ports

import (
	"context"

	"github.com/feedwire/feed-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// AddPost and RemovePost must be atomic with respect to the owner document so
// concurrent mutations by the same user never lose a post-set update.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddPost(ctx context.Context, userID, postID string) error
	RemovePost(ctx context.Context, userID, postID string) error
}
