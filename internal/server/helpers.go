package server

import (
	"errors"
	"log/slog"
	"strconv"

	"uplift/internal/middleware"
	"uplift/internal/models"
	"uplift/internal/session"

	"github.com/gofiber/fiber/v2"
)

// viewerFrom returns the request's viewer resolved by viewerMiddleware. An
// anonymous viewer is returned when the middleware has not run.
func viewerFrom(c *fiber.Ctx) session.Viewer {
	if v, ok := c.Locals("viewer").(session.Viewer); ok {
		return v
	}
	return session.Viewer{}
}

// render renders a view inside the shared layout with the viewer attached, so
// every page knows who is looking at it.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Viewer"] = viewerFrom(c)
	return c.Render(name, data, "layout")
}

// renderError maps an application error to a status code and the error page.
// Internal errors are logged server-side and surfaced only as a generic
// message.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong"

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR", "MODERATION_REJECTED":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		default:
			message = "Something went wrong"
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}

	return c.Status(status).Render("error", fiber.Map{
		"Viewer":  viewerFrom(c),
		"Message": message,
	}, "layout")
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// redirectBack sends the client to the referring page, or the feed when the
// request carries no referer.
func redirectBack(c *fiber.Ctx) error {
	target := c.Get(fiber.HeaderReferer)
	if target == "" {
		target = "/feed"
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}
