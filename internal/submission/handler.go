package submission

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/credlane/credlane/internal/user"
)

// Handler exposes the submission HTTP endpoints. All routes sit behind the
// session middleware, which stores the verified caller in fiber locals.
type Handler struct {
	svc *Service
}

// NewHandler builds a submission HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func caller(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(user.CurrentUserKey).(user.User)
	return u, ok
}

// Create persists a new loan application for the authenticated caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	u, ok := caller(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var payload Payload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid submission payload",
		})
	}

	record, err := h.svc.Append(c.UserContext(), payload, u)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save submission",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Submission saved successfully",
		"id":      record.ID,
	})
}

// List returns the submissions visible to the caller.
func (h *Handler) List(c *fiber.Ctx) error {
	u, ok := caller(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	records, err := h.svc.List(c.UserContext(), u)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load submissions",
		})
	}
	if records == nil {
		records = []Submission{}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":     true,
		"submissions": records,
	})
}

// Get returns a single submission for its owner or an administrator.
func (h *Handler) Get(c *fiber.Ctx) error {
	u, ok := caller(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	record, err := h.svc.GetByID(c.UserContext(), c.Params("id"), u)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		case errors.Is(err, ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Submission not found",
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to load submission",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":    true,
		"submission": record,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a submission to a new review state. Administrator only.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	u, ok := caller(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.svc.UpdateStatus(c.UserContext(), c.Params("id"), Status(req.Status), u)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		case errors.Is(err, ErrForbidden):
			return fiber.NewError(http.StatusForbidden, "administrator role required")
		case errors.Is(err, ErrInvalidStatus):
			return fiber.NewError(http.StatusBadRequest, "invalid submission status")
		case errors.Is(err, ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Submission not found",
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to update submission",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":    true,
		"submission": record,
	})
}
