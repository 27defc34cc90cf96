package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedwire/feed-service/internal/api/metrics"
	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/service"
)

// Context keys under which the gate stamps the request identity.
const (
	KeyIsAuth = "isAuth"
	KeyUserID = "userId"
)

// HardAuth is the strict enforcement mode of the access gate: a request
// without a credential is rejected as unauthenticated, and a request whose
// credential fails verification is rejected with a distinct verification
// error. Entry points behind HardAuth can rely on userId being set.
func HardAuth(credentials *service.Credentials) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := credentials.Authenticate(c.Request().Header.Get("Authorization"))
			switch identity.State {
			case service.IdentityAnonymous:
				metrics.AuthFailuresTotal.WithLabelValues("missing_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			case service.IdentityInvalid:
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrTokenVerification
			}

			c.Set(KeyIsAuth, true)
			c.Set(KeyUserID, identity.UserID)
			return next(c)
		}
	}
}

// SoftAuth is the permissive mode: it never fails the request. A verified
// credential stamps {isAuth: true, userId}; anything else clears the identity
// and lets the entry point decide policy.
func SoftAuth(credentials *service.Credentials) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := credentials.Authenticate(c.Request().Header.Get("Authorization"))
			if identity.State != service.IdentityAuthenticated {
				c.Set(KeyIsAuth, false)
				c.Set(KeyUserID, "")
				return next(c)
			}

			c.Set(KeyIsAuth, true)
			c.Set(KeyUserID, identity.UserID)
			return next(c)
		}
	}
}
