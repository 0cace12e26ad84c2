package user

import (
	"context"
	"errors"
	"testing"

	"github.com/credlane/credlane/internal/session"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{
		Email:    "A@x.com",
		FullName: "A B",
		Password: "secret1",
		Role:     RoleUser,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.PasswordHash != "" {
		t.Fatalf("register must strip the password hash")
	}
	if created.Email != "a@x.com" {
		t.Fatalf("email must be lowercase-normalized, got %q", created.Email)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("register must assign id and createdAt, got %+v", created)
	}

	logged, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login after register: %v", err)
	}
	if logged.ID != created.ID {
		t.Fatalf("login resolved wrong user: %s vs %s", logged.ID, created.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"missing email", RegisterInput{FullName: "A", Password: "secret1", Role: RoleUser}, "email"},
		{"no at sign", RegisterInput{Email: "ax.com", FullName: "A", Password: "secret1", Role: RoleUser}, "email"},
		{"empty local part", RegisterInput{Email: "@x.com", FullName: "A", Password: "secret1", Role: RoleUser}, "email"},
		{"empty domain", RegisterInput{Email: "a@", FullName: "A", Password: "secret1", Role: RoleUser}, "email"},
		{"two at signs", RegisterInput{Email: "a@b@c", FullName: "A", Password: "secret1", Role: RoleUser}, "email"},
		{"missing name", RegisterInput{Email: "a@x.com", Password: "secret1", Role: RoleUser}, "fullName"},
		{"short password", RegisterInput{Email: "a@x.com", FullName: "A", Password: "five5", Role: RoleUser}, "password"},
		{"bad role", RegisterInput{Email: "a@x.com", FullName: "A", Password: "secret1", Role: Role("root")}, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected failure on %s, got %s", tc.field, ve.Field)
			}
		})
	}

	// No record may have been persisted by any failed attempt.
	if _, err := svc.Login(ctx, "a@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("validation failures must not persist records, login got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	in := RegisterInput{Email: "dup@x.com", FullName: "Dup", Password: "secret1", Role: RoleUser}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "A", Password: "secret1", Role: RoleUser}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody@x.com", "secret1")
	_, wrongErr := svc.Login(ctx, "a@x.com", "wrong-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("both failure modes must be ErrInvalidCredentials, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("failure messages must match: %q vs %q", unknownErr, wrongErr)
	}
}

func TestCurrentUserStaleSession(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "A", Password: "secret1", Role: RoleUser})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, ok := svc.CurrentUser(ctx, session.Identity{ID: u.ID, Role: "user"}); !ok {
		t.Fatalf("live session must resolve")
	}
	if _, ok := svc.CurrentUser(ctx, session.Identity{ID: "no-such-id", Role: "user"}); ok {
		t.Fatalf("stale session must resolve to none")
	}
	if _, ok := svc.CurrentUser(ctx, session.Identity{}); ok {
		t.Fatalf("empty identity must resolve to none")
	}
}
