package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/pkg/schedule"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	calendar schedule.Calendar
}

func NewHealthController(calendar schedule.Calendar) IHealthController {
	return &healthController{calendar: calendar}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{
		Status: "ok",
		Time:   c.calendar.Now(),
	}))
}
