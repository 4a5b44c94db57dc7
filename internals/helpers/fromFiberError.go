package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromServiceError memetakan error kind dari service/engine ke response JSON.
func FromServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve.Fields)
	}

	var ce *ConflictError
	if errors.As(err, &ce) {
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Success:       false,
			Message:       ce.Message,
			ErrorCode:     statusToErrorCode(fiber.StatusConflict),
			BlockingCount: ce.Blocking,
		})
	}

	var pe *PreconditionError
	if errors.As(err, &pe) {
		return JsonError(c, fiber.StatusPreconditionFailed, pe.Message)
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return JsonError(c, fiber.StatusNotFound, nf.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	if code, msg, ok := MapPGError(err); ok {
		return JsonError(c, code, msg)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
