package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/credlane/credlane/internal/session"
)

func issueSessionValue(t *testing.T, codec *session.Codec) string {
	t.Helper()
	cookies, err := codec.Issue(session.Identity{ID: "u1", Role: "user"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return cookies[0].Value
}

func TestDecide(t *testing.T) {
	codec := session.NewCodec("test-secret", false)
	valid := issueSessionValue(t, codec)

	cases := []struct {
		name    string
		path    string
		value   string
		proceed bool
	}{
		{"public root", "/", "", true},
		{"public login", "/login", "", true},
		{"public api", "/api/auth/login", "", true},
		{"protected without session", "/dashboard/user", "", false},
		{"protected with garbage", "/settings", "not-a-token", false},
		{"protected with session", "/my-submissions", valid, true},
		{"prefix boundary", "/profiles-of-lenders", "", true},
		{"exact prefix", "/profile", "", false},
		{"nested protected", "/submissions/1700000000000", valid, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.path, tc.value, codec)
			if d.Proceed != tc.proceed {
				t.Fatalf("Decide(%q) proceed=%v, want %v", tc.path, d.Proceed, tc.proceed)
			}
			if !tc.proceed && d.Redirect != "/login" {
				t.Fatalf("Decide(%q) must redirect to /login, got %q", tc.path, d.Redirect)
			}
		})
	}
}

func TestAccessGateRedirectsAnonymousVisitors(t *testing.T) {
	codec := session.NewCodec("test-secret", false)
	app := fiber.New()
	app.Use(AccessGate(codec))
	app.Get("/dashboard/user", func(c *fiber.Ctx) error { return c.SendString("dashboard") })
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("home") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/user", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected /login redirect, got %q", loc)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public path must proceed, got %d", resp.StatusCode)
	}
}

func TestAccessGateAdmitsDecodableSession(t *testing.T) {
	codec := session.NewCodec("test-secret", false)
	app := fiber.New()
	app.Use(AccessGate(codec))
	app.Get("/settings", func(c *fiber.Ctx) error { return c.SendString("settings") })

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookie, Value: issueSessionValue(t, codec)})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decodable session must pass the gate, got %d", resp.StatusCode)
	}
}
