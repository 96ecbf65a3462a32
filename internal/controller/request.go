package controller

import (
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramId(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid %s", name)
	}
	return id, nil
}

// parseBody decodes and validates a JSON body into req.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func parseQuery(ctx *fiber.Ctx, query interface{}) error {
	if err := ctx.QueryParser(query); err != nil {
		return apperror.Validation("Invalid query parameters")
	}
	return nil
}

func created[T any](ctx *fiber.Ctx, message string, data T) error {
	res := serverutils.SuccessResponse(message, data)
	res.Code = fiber.StatusCreated
	return ctx.Status(fiber.StatusCreated).JSON(res)
}
