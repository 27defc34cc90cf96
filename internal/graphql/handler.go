package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/api/middleware"
	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/service"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// responseError is one entry of the errors array: the message, the same
// classification code the resource surface would use, and the per-field
// entries of a validation failure.
type responseError struct {
	Message string                  `json:"message"`
	Status  int                     `json:"status"`
	Data    []domain.FieldViolation `json:"data,omitempty"`
}

type response struct {
	Data   interface{}     `json:"data,omitempty"`
	Errors []responseError `json:"errors,omitempty"`
}

// NewHandler returns the echo handler serving the query-language surface.
// It expects the soft access gate to have run: the stamped identity is moved
// into the execution context for the resolvers to inspect.
func NewHandler(schema graphql.Schema, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}

		isAuth, _ := c.Get(middleware.KeyIsAuth).(bool)
		userID, _ := c.Get(middleware.KeyUserID).(string)
		identity := service.Identity{State: service.IdentityAnonymous}
		if isAuth {
			identity = service.Identity{State: service.IdentityAuthenticated, UserID: userID}
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        WithIdentity(c.Request().Context(), identity),
		})

		resp := response{Data: result.Data}
		for _, fe := range result.Errors {
			entry := responseError{Message: fe.Message}

			// Syntax and query-validation errors carry no resolver error.
			orig := originalOf(fe)
			if orig == nil {
				entry.Status = http.StatusBadRequest
				resp.Errors = append(resp.Errors, entry)
				continue
			}

			entry.Status = classify(orig)
			if ve, ok := domain.AsValidationError(orig); ok {
				entry.Data = ve.Violations
			}
			if entry.Status == http.StatusInternalServerError {
				log.Error().Err(orig).Str("operation", req.OperationName).Msg("graphql resolver failed")
				entry.Message = "internal server error"
			}
			resp.Errors = append(resp.Errors, entry)
		}

		return c.JSON(http.StatusOK, resp)
	}
}
