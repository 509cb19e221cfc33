package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"groupchat/internal/errors"
)

// Roles recognized by route guards. A principal holds exactly one of them.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the authenticated identity attached to a request after
// token verification.
type Principal struct {
	ID       primitive.ObjectID
	Username string
	IsAdmin  bool
}

// Role derives the principal's single role. Admins are not users: the
// role is singular, not cumulative.
func (p *Principal) Role() string {
	if p.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// CurrentPrincipal extracts the identity placed on the context by the JWT
// middleware.
func CurrentPrincipal(c echo.Context) (*Principal, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, unauthorized()
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, unauthorized()
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, unauthorized()
	}
	return &Principal{ID: id, Username: claims.Username, IsAdmin: claims.IsAdmin}, nil
}

// RequireRoles gates a route on the principal's derived role.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := CurrentPrincipal(c)
			if err != nil {
				return err
			}
			if !lo.Contains(roles, principal.Role()) {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{Message: "Permission denied"})
			}
			return next(c)
		}
	}
}

func unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Message: "Unauthorized"})
}
