package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credlane/credlane/internal/submission"
)

// RegisterSubmissionRoutes wires the loan-application endpoints. Every route
// requires an authenticated session.
func RegisterSubmissionRoutes(r fiber.Router, h *submission.Handler, sessionAuth fiber.Handler) {
	group := r.Group("/submissions", sessionAuth)
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Patch("/:id/status", h.UpdateStatus)
}
