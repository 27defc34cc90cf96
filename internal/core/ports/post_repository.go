package ports

import (
	"context"

	"github.com/feedwire/feed-service/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// Create persists a new post and returns it with its assigned id.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// FindByID returns domain.ErrPostNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns one page of posts sorted newest-first plus the total number
	// of stored posts. page is 1-based; an out-of-range page yields an empty
	// slice, not an error.
	List(ctx context.Context, page, pageSize int) ([]domain.Post, int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}
