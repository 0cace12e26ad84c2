package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/credlane/credlane/internal/fstore"
	"github.com/credlane/credlane/internal/session"
)

// CurrentUserKey is the fiber locals key under which the session middleware
// stores the authenticated User.
const CurrentUserKey = "current_user"

// Handler exposes the authentication endpoints.
type Handler struct {
	svc   *Service
	codec *session.Codec
}

// NewHandler builds the auth HTTP handler.
func NewHandler(svc *Service, codec *session.Codec) *Handler {
	return &Handler{svc: svc, codec: codec}
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(u User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role, CreatedAt: u.CreatedAt}
}

// Register creates a user account. The response never includes the password
// hash.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	created, err := h.svc.Register(c.UserContext(), RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     Role(req.Role),
	})
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return fiber.NewError(http.StatusBadRequest, ve.Reason)
		case errors.Is(err, ErrDuplicate):
			return fiber.NewError(http.StatusConflict, "user already exists")
		case errors.Is(err, fstore.ErrUnavailable):
			return fiber.NewError(http.StatusInternalServerError, "registration temporarily unavailable")
		default:
			return fiber.NewError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    toResponse(created),
	})
}

// Login verifies credentials and sets the session and role cookies.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	u, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "invalid email or password")
		}
		return fiber.NewError(http.StatusInternalServerError, "internal server error")
	}

	cookies, err := h.codec.Issue(session.Identity{ID: u.ID, Role: string(u.Role)})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "internal server error")
	}
	for _, ck := range cookies {
		c.Cookie(ck)
	}

	u.PasswordHash = ""
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"user":    toResponse(u),
	})
}

// Logout clears both cookies. It is idempotent and succeeds with or without
// an existing session.
func (h *Handler) Logout(c *fiber.Ctx) error {
	for _, ck := range h.codec.Clear() {
		c.Cookie(ck)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Logout successful"})
}

// Me returns the authenticated user established by the session middleware.
func (h *Handler) Me(c *fiber.Ctx) error {
	u, ok := c.Locals(CurrentUserKey).(User)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": toResponse(u)})
}
