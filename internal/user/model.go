package user

import "time"

// Role restricts a user to one of the two portal roles.
type Role string

const (
	RoleUser          Role = "user"
	RoleAdministrator Role = "administrator"
)

// ValidRole reports whether r is one of the portal roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdministrator
}

// User is a registered applicant or administrator. The JSON tags define the
// on-disk record shape in the users collection; the password hash never
// leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"password"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}

// Candidate is the input to Repository.Create. The password arrives in
// plaintext exactly once and is hashed before any record is persisted.
type Candidate struct {
	Email         string
	FullName      string
	PasswordPlain string
	Role          Role
}
