package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetAllUsers(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	auth    fiber.Handler
}

func NewAdminController(service service.IAdminService, auth fiber.Handler) IAdminController {
	return &adminController{
		service: service,
		auth:    auth,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(c.auth, serverutils.RequireRoles(entity.UserRoleAdmin))

	// Users
	h.Get("/users", c.GetAllUsers)
	h.Put("/users/:id/status", c.UpdateUserStatus)

	// Logs
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	var query dto.UserListQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListUsers(ctx.UserContext(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Users", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	userId, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SetUserActiveRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SetUserActive(ctx.UserContext(), userId, *req.IsActive)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User status updated", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	query := dto.LogListQuery{Limit: 10}
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	logs, err := c.service.GetSystemLogs(ctx.UserContext(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	// Log ids are content hashes, not UUIDs
	l, err := c.service.GetLogDetail(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
