package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRatingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	Received(ctx *fiber.Ctx) error
	ForSeller(ctx *fiber.Ctx) error
	ForMilk(ctx *fiber.Ctx) error
}

type ratingController struct {
	service service.IRatingService
	auth    fiber.Handler
}

func NewRatingController(service service.IRatingService, auth fiber.Handler) IRatingController {
	return &ratingController{service: service, auth: auth}
}

func (c *ratingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ratings")
	customerOnly := serverutils.RequireRoles(entity.UserRoleCustomer)

	h.Post("/", c.auth, customerOnly, c.Create)
	h.Get("/customer", c.auth, customerOnly, c.Mine)
	h.Get("/seller/received", c.auth, serverutils.RequireRoles(entity.UserRoleSeller), c.Received)
	h.Get("/seller/:sellerId", c.ForSeller)
	h.Get("/milk/:milkId", c.ForMilk)
	h.Put("/:id", c.auth, customerOnly, c.Update)
	h.Delete("/:id", c.auth, customerOnly, c.Delete)
}

func (c *ratingController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateRatingRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return created(ctx, "Rating submitted", res)
}

func (c *ratingController) Update(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateRatingRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rating updated", res))
}

func (c *ratingController) Delete(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), actor, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Rating deleted", nil))
}

func (c *ratingController) Mine(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMine(ctx.UserContext(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get ratings", res))
}

func (c *ratingController) Received(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.ReceivedRatingQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListReceived(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get ratings", res))
}

func (c *ratingController) ForSeller(ctx *fiber.Ctx) error {
	sellerId, err := paramId(ctx, "sellerId")
	if err != nil {
		return err
	}

	res, err := c.service.ListForSeller(ctx.UserContext(), sellerId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get seller ratings", res))
}

func (c *ratingController) ForMilk(ctx *fiber.Ctx) error {
	milkId, err := paramId(ctx, "milkId")
	if err != nil {
		return err
	}

	res, err := c.service.ListForMilk(ctx.UserContext(), milkId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get milk ratings", res))
}
