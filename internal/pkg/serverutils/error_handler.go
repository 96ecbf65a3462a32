package serverutils

import (
	"errors"

	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:   fiber.StatusBadRequest,
	apperror.KindUnauthorized: fiber.StatusUnauthorized,
	apperror.KindForbidden:    fiber.StatusForbidden,
	apperror.KindNotFound:     fiber.StatusNotFound,
	apperror.KindState:        fiber.StatusConflict,
	apperror.KindInternal:     fiber.StatusInternalServerError,
}

// ErrorHandler renders errors in the response envelope. Internal errors are logged and never shown verbatim.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		kind := apperror.KindOf(err)
		status := kindStatus[kind]
		if kind == apperror.KindInternal {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			return ctx.Status(status).JSON(ErrorResponse(status, internalErrorMessage))
		}

		var appErr *apperror.Error
		errors.As(err, &appErr)
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}
}

// ErrorHandlerMiddleware applies ErrorHandler to errors returned further down the chain.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}
