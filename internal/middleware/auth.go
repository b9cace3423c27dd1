package middleware

import (
	"net/http"
	"strings"

	"sportify-api/internal/service"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// AuthMiddleware rejects requests without a bearer token with 403. A malformed
// Authorization header or an invalid or expired token gets 401. On success the
// token subject is stored in the context.
func AuthMiddleware(tokens service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusForbidden, "No token provided")
			}

			userID, err := tokens.ParseSession(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}

// bearerToken reports ok=false for a present header that is not a Bearer
// credential. A missing header or an empty Bearer token yields "".
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", true
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}
