package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMilkController interface {
	RegisterRoutes(r fiber.Router)
	ListTypes(ctx *fiber.Ctx) error
	ListByType(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	MyProducts(ctx *fiber.Ctx) error
}

type milkController struct {
	service service.IMilkService
	auth    fiber.Handler
}

func NewMilkController(service service.IMilkService, auth fiber.Handler) IMilkController {
	return &milkController{service: service, auth: auth}
}

func (c *milkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/milk")
	sellerOnly := serverutils.RequireRoles(entity.UserRoleSeller)

	h.Get("/types", c.ListTypes)
	h.Get("/sellers/:milkType", c.ListByType)
	h.Get("/seller/my-products", c.auth, sellerOnly, c.MyProducts)
	h.Get("/:id", c.Show)
	h.Post("/", c.auth, sellerOnly, c.Create)
	h.Put("/:id", c.auth, sellerOnly, c.Update)
	h.Delete("/:id", c.auth, sellerOnly, c.Delete)
}

func (c *milkController) ListTypes(ctx *fiber.Ctx) error {
	res, err := c.service.ListTypes(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get milk types", res))
}

func (c *milkController) ListByType(ctx *fiber.Ctx) error {
	res, err := c.service.ListByType(ctx.UserContext(), ctx.Params("milkType"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sellers", res))
}

func (c *milkController) Show(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get milk", res))
}

func (c *milkController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateMilkRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return created(ctx, "Milk listing created", res)
}

func (c *milkController) Update(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateMilkRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Milk listing updated", res))
}

func (c *milkController) Delete(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse[any]("Milk listing deleted", nil))
}

func (c *milkController) MyProducts(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMine(ctx.UserContext(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get products", res))
}
