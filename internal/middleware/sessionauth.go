package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/credlane/credlane/internal/session"
	"github.com/credlane/credlane/internal/user"
)

// SessionAuth returns a middleware that resolves the session cookie to a
// live user record and stores it in fiber locals. A missing, malformed or
// stale cookie uniformly yields 401; the role always comes from the stored
// record, never from the readable role cookie.
func SessionAuth(codec *session.Codec, users *user.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := codec.Decode(c.Cookies(session.SessionCookie))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		u, ok := users.CurrentUser(c.UserContext(), ident)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		c.Locals(user.CurrentUserKey, u)
		return c.Next()
	}
}
