package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// renderError maps rich errors onto HTTP responses. Validation, conflict,
// and not-found failures carry their message verbatim; everything else
// collapses to a generic 500 so internals do not leak.
func renderError(ctx *fiber.Ctx, err error) error {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		rich = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	switch rich.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": rich.Message})
	case errors.CategoryConflict:
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": rich.Message})
	case errors.CategoryNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": rich.Message})
	case errors.CategoryAuth, errors.CategoryAuthz:
		return unauthorized(ctx)
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "an unexpected server error occurred",
		})
	}
}

// unauthorized is the single externally-visible outcome for every token
// gate failure; expired, tampered, and subject-deleted tokens are not
// distinguished to the caller.
func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}
