package ports

import (
	"context"

	"github.com/feedwire/feed-service/internal/core/domain"
)

// CreatePostInput carries all data needed to publish a post. ImagePath is the
// already-stored asset path; empty means the reserved placeholder.
type CreatePostInput struct {
	Title     string `validate:"required,min=5"`
	Content   string `validate:"required"`
	ImagePath string
	UserID    string
}

// UpdatePostInput carries an edit request. An empty ImagePath keeps the
// stored image; a different one supersedes it and triggers asset reconciliation.
type UpdatePostInput struct {
	PostID    string
	UserID    string
	Title     string `validate:"required,min=5"`
	Content   string `validate:"required"`
	ImagePath string
}

// ListPostsResult is one page of the feed.
type ListPostsResult struct {
	Posts       []domain.Post `json:"posts"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalItems  int64         `json:"totalItems"`
}

// FeedService defines the post lifecycle use cases shared by both facade
// surfaces. Every operation assumes the access gate already ran; ownership is
// enforced against the UserID fields.
type FeedService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context, page int) (*ListPostsResult, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}
