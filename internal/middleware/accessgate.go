package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/credlane/credlane/internal/session"
)

// loginPath is where unauthenticated visitors of protected pages are sent.
const loginPath = "/login"

// protectedPrefixes are the dashboard areas that require a session before
// the underlying handler runs. Everything else is public at this layer; API
// handlers enforce their own authentication and answer 401 instead of
// redirecting.
var protectedPrefixes = []string{
	"/dashboard",
	"/submissions",
	"/my-submissions",
	"/chat",
	"/notifications",
	"/settings",
	"/profile",
	"/devices",
	"/ai-insights",
}

// ProtectedPath reports whether path falls under a protected prefix.
func ProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Decision is the outcome of the gate for one request.
type Decision struct {
	Proceed  bool
	Redirect string
}

// Decide classifies the path and checks that a protected one carries a
// decodable session cookie. It only decodes: a well-formed token whose user
// has since disappeared still passes the gate, and is caught at the point of
// data access instead. The function is pure and does no store lookups.
func Decide(path, sessionValue string, codec *session.Codec) Decision {
	if !ProtectedPath(path) {
		return Decision{Proceed: true}
	}
	if _, err := codec.Decode(sessionValue); err != nil {
		return Decision{Redirect: loginPath}
	}
	return Decision{Proceed: true}
}

// AccessGate intercepts every request and sends unauthenticated visitors of
// protected paths to the login page.
func AccessGate(codec *session.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Decide(c.Path(), c.Cookies(session.SessionCookie), codec)
		if !decision.Proceed {
			return c.Redirect(decision.Redirect, fiber.StatusFound)
		}
		return c.Next()
	}
}
