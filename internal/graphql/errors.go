package graphql

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/feedwire/feed-service/internal/core/domain"
)

// classify maps a resolver error to the same status code the resource surface
// would return for it, keeping the two facades' failure classifications in
// lockstep.
func classify(err error) int {
	if _, ok := domain.AsValidationError(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, domain.ErrPostNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// originalOf unwraps graphql-go's error envelopes down to the error the
// resolver actually returned.
func originalOf(fe gqlerrors.FormattedError) error {
	err := fe.OriginalError()
	for {
		switch e := err.(type) {
		case *gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.Error:
			err = e.OriginalError
		default:
			return err
		}
	}
}
