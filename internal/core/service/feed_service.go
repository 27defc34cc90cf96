package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/api/metrics"
	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/ports"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 2

// FeedService implements the post lifecycle: publish, read, page, edit and
// delete, plus the asset reconciliation and fanout side effects of each
// mutation. Cache and publisher are optional collaborators.
type FeedService struct {
	posts     ports.PostRepository
	users     ports.UserRepository
	assets    *AssetManager
	cache     ports.FeedCache
	publisher ports.PostPublisher
	logger    zerolog.Logger
}

func NewFeedService(
	posts ports.PostRepository,
	users ports.UserRepository,
	assets *AssetManager,
	cache ports.FeedCache,
	publisher ports.PostPublisher,
	logger zerolog.Logger,
) *FeedService {
	return &FeedService{
		posts:     posts,
		users:     users,
		assets:    assets,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *FeedService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	imageURL := input.ImagePath
	if imageURL == "" {
		imageURL = PlaceholderImage
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  imageURL,
		Creator:   domain.Creator{ID: owner.ID, Name: owner.Name},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.users.AddPost(ctx, owner.ID, created.ID); err != nil {
		s.logger.Error().Err(err).Str("post_id", created.ID).Msg("failed to append post to owner set")
		return nil, fmt.Errorf("append post to owner set: %w", err)
	}

	s.afterMutation(ctx, domain.ActionCreate, created)
	s.logger.Info().Str("post_id", created.ID).Str("user_id", owner.ID).Msg("post created")
	return created, nil
}

func (s *FeedService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// ListPosts returns one feed page, newest first. totalPages is at least 1
// even for an empty feed, and an out-of-range page yields an empty slice.
func (s *FeedService) ListPosts(ctx context.Context, page int) (*ports.ListPostsResult, error) {
	if page < 1 {
		page = 1
	}

	if s.cache != nil {
		if cached, ok := s.cache.GetPage(ctx, page); ok {
			return cached, nil
		}
	}

	posts, total, err := s.posts.List(ctx, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	result := &ports.ListPostsResult{
		Posts:       posts,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}

	if s.cache != nil {
		s.cache.SetPage(ctx, page, result)
	}
	return result, nil
}

func (s *FeedService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post.Creator.ID != input.UserID {
		return nil, domain.ErrForbidden
	}

	oldImage := post.ImageURL
	post.Title = input.Title
	post.Content = input.Content
	if input.ImagePath != "" {
		post.ImageURL = input.ImagePath
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to update post")
		return nil, fmt.Errorf("update post: %w", err)
	}

	// The superseded asset is only reclaimed once the new document is stored.
	s.assets.Reconcile(ctx, oldImage, post.ImageURL)

	s.afterMutation(ctx, domain.ActionUpdate, post)
	s.logger.Info().Str("post_id", post.ID).Msg("post updated")
	return post, nil
}

// DeletePost removes the post, prunes it from the owner's post set and
// reclaims its image asset. The three steps are ordered so a partial failure
// stays recoverable: the post goes first, pruning is never skipped, and asset
// cleanup is non-fatal.
func (s *FeedService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Creator.ID != userID {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		s.logger.Error().Err(err).Str("post_id", postID).Msg("failed to delete post")
		return fmt.Errorf("delete post: %w", err)
	}

	pruneErr := s.users.RemovePost(ctx, userID, postID)
	if pruneErr != nil {
		s.logger.Error().Err(pruneErr).Str("post_id", postID).Msg("failed to prune owner post set")
	}

	s.assets.Reconcile(ctx, post.ImageURL, "")

	if pruneErr != nil {
		return fmt.Errorf("prune owner post set: %w", pruneErr)
	}

	s.afterMutation(ctx, domain.ActionDelete, post)
	s.logger.Info().Str("post_id", postID).Str("user_id", userID).Msg("post deleted")
	return nil
}

// afterMutation runs the shared side effects of every successful mutation:
// cache invalidation, metrics, and the fire-and-forget fanout event.
func (s *FeedService) afterMutation(ctx context.Context, action string, post *domain.Post) {
	metrics.PostMutationsTotal.WithLabelValues(action).Inc()

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.publisher != nil {
		s.publisher.Publish(domain.PostEvent{Action: action, Post: *post})
	}
}
