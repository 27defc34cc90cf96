package ports

import "context"

// FeedCache caches rendered feed pages. All operations are best-effort: a
// cache failure degrades to a repository read, never to a request failure.
type FeedCache interface {
	GetPage(ctx context.Context, page int) (*ListPostsResult, bool)
	SetPage(ctx context.Context, page int, result *ListPostsResult)
	// Invalidate drops every cached page; called after each post mutation.
	Invalidate(ctx context.Context)
}
