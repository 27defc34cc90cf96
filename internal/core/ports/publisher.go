package ports

import "github.com/feedwire/feed-service/internal/core/domain"

// PostPublisher broadcasts post mutation events to connected clients.
// Publish is fire-and-forget: it must not block and its outcome never affects
// the originating domain operation.
type PostPublisher interface {
	Publish(event domain.PostEvent)
}
