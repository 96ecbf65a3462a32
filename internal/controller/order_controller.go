package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	CreateDaily(ctx *fiber.Ctx) error
	CustomerOrders(ctx *fiber.Ctx) error
	SellerOrders(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type orderController struct {
	service service.IOrderService
	auth    fiber.Handler
}

func NewOrderController(service service.IOrderService, auth fiber.Handler) IOrderController {
	return &orderController{service: service, auth: auth}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/orders")
	h.Use(c.auth)

	customerOnly := serverutils.RequireRoles(entity.UserRoleCustomer)
	sellerOnly := serverutils.RequireRoles(entity.UserRoleSeller)

	h.Post("/daily", customerOnly, c.CreateDaily)
	h.Get("/customer", customerOnly, c.CustomerOrders)
	h.Get("/seller", sellerOnly, c.SellerOrders)
	h.Get("/:id", c.Show)
	h.Put("/:id/status", sellerOnly, c.UpdateStatus)
	h.Put("/:id/cancel", customerOnly, c.Cancel)
}

func (c *orderController) CreateDaily(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateDailyOrderRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateDaily(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return created(ctx, "Order placed successfully", res)
}

func (c *orderController) CustomerOrders(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.CustomerOrderQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListForCustomer(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get orders", res))
}

func (c *orderController) SellerOrders(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.SellerOrderQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListForSeller(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get orders", res))
}

func (c *orderController) Show(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get order", res))
}

func (c *orderController) UpdateStatus(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.UserContext(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order status updated", res))
}

func (c *orderController) Cancel(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	// The reason is optional, so an empty body is fine
	var req dto.CancelOrderRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.Cancel(ctx.UserContext(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order cancelled", res))
}
