// Package session issues and validates the cookie pair carrying a logged-in
// user's identity. The authoritative value lives in the http-only
// user_session cookie as a signed HS256 token; the readable user_role cookie
// mirrors only the role for client-side branching and is never trusted as an
// authorization input server-side.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the http-only cookie holding the signed identity token.
	SessionCookie = "user_session"
	// RoleCookie mirrors the role for client-side UI branching only.
	RoleCookie = "user_role"
)

// ErrDecode indicates the session cookie value could not be parsed or its
// signature did not verify. Callers treat it the same as an absent session.
var ErrDecode = errors.New("invalid session token")

// Identity is the subject carried by a session token.
type Identity struct {
	ID   string
	Role string
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens and builds the matching cookies.
type Codec struct {
	secret []byte
	secure bool
}

// NewCodec builds a codec signing with secret. secure controls the Secure
// cookie attribute and should be true in production deployments.
func NewCodec(secret string, secure bool) *Codec {
	return &Codec{secret: []byte(secret), secure: secure}
}

// Issue returns the session and role cookies for the given identity. The
// session cookie has no explicit expiry and lives for the browser session.
// The role value is always derived from the same identity that was signed
// into the session token.
func (cd *Codec) Issue(ident Identity) ([]*fiber.Cookie, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: ident.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  ident.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(cd.secret)
	if err != nil {
		return nil, err
	}

	sessionCookie := cd.cookie(SessionCookie, signed, true)
	roleCookie := cd.cookie(RoleCookie, ident.Role, false)
	return []*fiber.Cookie{sessionCookie, roleCookie}, nil
}

// Clear returns both cookies emptied and immediately expired so the browser
// deletes them. Clearing never depends on an existing session.
func (cd *Codec) Clear() []*fiber.Cookie {
	sessionCookie := cd.cookie(SessionCookie, "", true)
	sessionCookie.MaxAge = -1
	sessionCookie.Expires = time.Unix(0, 0)

	roleCookie := cd.cookie(RoleCookie, "", false)
	roleCookie.MaxAge = -1
	roleCookie.Expires = time.Unix(0, 0)

	return []*fiber.Cookie{sessionCookie, roleCookie}
}

// Decode parses and verifies a session cookie value. Any malformed, empty or
// tampered value yields ErrDecode.
func (cd *Codec) Decode(value string) (Identity, error) {
	if value == "" {
		return Identity{}, ErrDecode
	}
	parsed, err := jwt.ParseWithClaims(value, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrDecode
		}
		return cd.secret, nil
	})
	if err != nil {
		return Identity{}, ErrDecode
	}
	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || cl.Subject == "" {
		return Identity{}, ErrDecode
	}
	return Identity{ID: cl.Subject, Role: cl.Role}, nil
}

func (cd *Codec) cookie(name, value string, httpOnly bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: httpOnly,
		Secure:   cd.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
