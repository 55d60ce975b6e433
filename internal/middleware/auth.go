package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"drivehub/internal/auth"
	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
	"drivehub/internal/repository"
)

// userContextKey is where the resolved user record lives in the Echo context.
// The echo-jwt middleware stores the raw token under "user", so a distinct key
// is used for the loaded record.
const userContextKey = "currentUser"

// LoadUser resolves the validated token's subject to a live user record and
// attaches it to the context. A token whose user no longer exists is treated
// the same as an invalid token. Resolution is always by primary id.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated()
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return unauthenticated()
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return unauthenticated()
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose resolved user is not an ADMIN. It must
// run after LoadUser and is applied to every admin-only route.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated()
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "admin role required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CurrentUser returns the user attached by LoadUser, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: "unauthorized access",
		Code:  "UNAUTHENTICATED",
	})
}
