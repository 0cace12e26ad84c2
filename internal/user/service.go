package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/credlane/credlane/internal/session"
)

// dummyHash is compared against when a login targets an unknown email, so
// both failure paths perform one bcrypt verification and return the same
// error.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credlane-timing-pad"), hashCost)

// Service orchestrates registration, login and session resolution over a
// credential repository.
type Service struct {
	repo Repository
}

// NewService creates an auth service on top of the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput is the registration request after transport decoding.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     Role
}

// Register validates the input, creates the record and returns it with the
// password hash stripped. Validation failures are *ValidationError and leave
// the store untouched; a taken email surfaces as ErrDuplicate.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateEmail(email); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(in.FullName) == "" {
		return User{}, invalid("fullName", "full name is required")
	}
	if len(in.Password) < 6 {
		return User{}, invalid("password", "password must be at least 6 characters long")
	}
	if !ValidRole(in.Role) {
		return User{}, invalid("role", "role must be user or administrator")
	}

	created, err := s.repo.Create(ctx, Candidate{
		Email:         email,
		FullName:      strings.TrimSpace(in.FullName),
		PasswordPlain: in.Password,
		Role:          in.Role,
	})
	if err != nil {
		return User{}, err
	}
	created.PasswordHash = ""
	return created, nil
}

// Login verifies the credentials and returns the matching user. Unknown
// email and wrong password are indistinguishable to the caller: both cost
// one hash verification and both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser resolves a decoded session identity to the live user record.
// A token referencing an id no longer present is a stale session and
// reported as "no user", not an error.
func (s *Service) CurrentUser(ctx context.Context, ident session.Identity) (User, bool) {
	if ident.ID == "" {
		return User{}, false
	}
	u, err := s.repo.FindByID(ctx, ident.ID)
	if err != nil {
		return User{}, false
	}
	return u, true
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "email is required")
	}
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return invalid("email", "invalid email format")
	}
	return nil
}
