package session

import (
	"errors"
	"strings"
	"testing"
)

func TestIssueDecodeRoundtrip(t *testing.T) {
	codec := NewCodec("test-secret", false)

	cookies, err := codec.Issue(Identity{ID: "01J0000000000000000000TEST", Role: "user"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}

	sessionCookie, roleCookie := cookies[0], cookies[1]
	if sessionCookie.Name != SessionCookie || !sessionCookie.HTTPOnly {
		t.Fatalf("session cookie must be the http-only %s cookie, got %+v", SessionCookie, sessionCookie)
	}
	if roleCookie.Name != RoleCookie || roleCookie.HTTPOnly {
		t.Fatalf("role cookie must be readable, got %+v", roleCookie)
	}
	if roleCookie.Value != "user" {
		t.Fatalf("role cookie must mirror the signed role, got %q", roleCookie.Value)
	}

	ident, err := codec.Decode(sessionCookie.Value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ident.ID != "01J0000000000000000000TEST" || ident.Role != "user" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret", false)

	for _, value := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(value); !errors.Is(err, ErrDecode) {
			t.Fatalf("decode(%q): expected ErrDecode, got %v", value, err)
		}
	}
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec := NewCodec("test-secret", false)
	cookies, err := codec.Issue(Identity{ID: "u1", Role: "user"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Swap the payload for one claiming administrator; the signature no
	// longer matches.
	other := NewCodec("other-secret", false)
	forged, err := other.Issue(Identity{ID: "u1", Role: "administrator"})
	if err != nil {
		t.Fatalf("issue forged: %v", err)
	}
	parts := strings.Split(cookies[0].Value, ".")
	forgedParts := strings.Split(forged[0].Value, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := codec.Decode(tampered); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode for tampered token, got %v", err)
	}
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	issuer := NewCodec("secret-a", false)
	verifier := NewCodec("secret-b", false)

	cookies, err := issuer.Issue(Identity{ID: "u1", Role: "user"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Decode(cookies[0].Value); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode across secrets, got %v", err)
	}
}

func TestClearExpiresBothCookies(t *testing.T) {
	codec := NewCodec("test-secret", true)

	cookies := codec.Clear()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.Value != "" {
			t.Fatalf("%s must be emptied, got %q", c.Name, c.Value)
		}
		if c.MaxAge >= 0 {
			t.Fatalf("%s must carry an immediate expiry, got MaxAge=%d", c.Name, c.MaxAge)
		}
		if !c.Secure {
			t.Fatalf("%s must keep the Secure attribute in production codecs", c.Name)
		}
	}
}
