package serverutils

import (
	"errors"

	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind onto its HTTP status code.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidArgument, apperror.KindConflict, apperror.KindInsufficientBalance:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler renders any error returned by a handler as the error
// envelope. Internal errors are logged and replaced by a generic message.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		appErr := apperror.As(err)
		status := StatusFor(appErr.Kind)

		message := appErr.Message
		switch appErr.Kind {
		case apperror.KindInternal:
			message = "internal server error"
			fallthrough
		case apperror.KindPartialFailure:
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"kind":   string(appErr.Kind),
				"error":  err.Error(),
			})
		}

		res := ErrorResponse(status, message)
		res.Error = &ErrorDetail{
			Kind:    string(appErr.Kind),
			Reason:  appErr.Reason,
			Details: appErr.Details,
		}
		return ctx.Status(status).JSON(res)
	}
}
