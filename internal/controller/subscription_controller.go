package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	CustomerSubscriptions(ctx *fiber.Ctx) error
	SellerSubscriptions(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Pause(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service service.ISubscriptionService
	auth    fiber.Handler
}

func NewSubscriptionController(service service.ISubscriptionService, auth fiber.Handler) ISubscriptionController {
	return &subscriptionController{service: service, auth: auth}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Use(c.auth)

	customerOnly := serverutils.RequireRoles(entity.UserRoleCustomer)

	h.Post("/", customerOnly, c.Create)
	h.Get("/customer", customerOnly, c.CustomerSubscriptions)
	h.Get("/seller", serverutils.RequireRoles(entity.UserRoleSeller), c.SellerSubscriptions)
	h.Get("/:id", c.Show)
	h.Post("/:id/pause", customerOnly, c.Pause)
	h.Put("/:id/cancel", customerOnly, c.Cancel)
	h.Put("/:id/status", serverutils.RequireRoles(entity.UserRoleCustomer, entity.UserRoleAdmin), c.UpdateStatus)
}

func (c *subscriptionController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSubscriptionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return created(ctx, "Subscription created successfully", res)
}

func (c *subscriptionController) CustomerSubscriptions(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.SubscriptionListQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListForCustomer(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscriptions", res))
}

func (c *subscriptionController) SellerSubscriptions(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.SubscriptionListQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListForSeller(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscriptions", res))
}

func (c *subscriptionController) Show(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription", res))
}

func (c *subscriptionController) Pause(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.PauseDateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.PauseDate(ctx.UserContext(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription paused for the date", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Cancel(ctx.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", res))
}

func (c *subscriptionController) UpdateStatus(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSubscriptionStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.UserContext(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription status updated", res))
}
