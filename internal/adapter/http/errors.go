package http

import (
	"errors"
	"log/slog"

	"portfolio-resume/internal/model"
	"portfolio-resume/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts domain errors to HTTP responses.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message, "code": fe.Code})
		}

		var verr *model.ValidationErrors
		if errors.As(err, &verr) {
			body := fiber.Map{"error": verr.Error(), "fields": verr.Fields}
			if s := verr.FirstSection(); s != "" {
				body["section"] = s
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
		}

		var serr *model.SchemaError
		if errors.As(err, &serr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload", "problems": serr.Problems})
		}

		switch {
		case errors.Is(err, wizard.ErrDraftNotFound), errors.Is(err, wizard.ErrEntryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, wizard.ErrDraftConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, model.ErrUnknownTemplate),
			errors.Is(err, wizard.ErrUnknownSection),
			errors.Is(err, wizard.ErrUnknownNavigate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error("internal server error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
		})
	}
}
