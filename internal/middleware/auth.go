package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/types"
)

const (
	userIDKey = "userID"
	claimsKey = "claims"
	userKey   = "user"
)

// RequireSession validates the session cookie and stores the caller's id in context
func RequireSession(sessions *services.SessionIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := sessions.ValidateSession(c.UserContext(), c.Cookies(services.SessionCookieName))
		if err != nil {
			return err
		}
		c.Locals(userIDKey, claims.UserID)
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AdminOnly requires the session user to exist and be an admin. Must run after RequireSession.
func AdminOnly(users *services.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := UserID(c)
		if id == "" {
			return types.NewError(types.Unauthenticated, "No token, authorization denied", nil)
		}
		user, err := users.FindByID(c.UserContext(), id)
		if err != nil {
			if types.IsType(err, types.NotFound) {
				return types.NewError(types.Unauthenticated, "User not found", nil)
			}
			return err
		}
		if !user.IsAdmin {
			return types.NewError(types.Forbidden, "Access denied. Admin only.", nil)
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" outside RequireSession
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// Claims returns the validated session claims, or nil outside RequireSession
func Claims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}
