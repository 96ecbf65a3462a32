package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	CustomerSignup(ctx *fiber.Ctx) error
	CustomerLogin(ctx *fiber.Ctx) error
	SellerLogin(ctx *fiber.Ctx) error
	AdminLogin(ctx *fiber.Ctx) error
	CreateSeller(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	auth    fiber.Handler
	limiter *serverutils.RateLimiter
}

func NewAuthController(service service.IAuthService, auth fiber.Handler, limiter *serverutils.RateLimiter) IAuthController {
	return &authController{
		service: service,
		auth:    auth,
		limiter: limiter,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")

	// Credential endpoints are rate limited per client IP
	limited := c.limiter.Middleware()
	h.Post("/customer/signup", limited, c.CustomerSignup)
	h.Post("/customer/login", limited, c.CustomerLogin)
	h.Post("/seller/login", limited, c.SellerLogin)
	h.Post("/admin/login", limited, c.AdminLogin)

	h.Post("/admin/create-seller", c.auth, serverutils.RequireRoles(entity.UserRoleAdmin), c.CreateSeller)
	h.Get("/me", c.auth, c.Me)
}

func (c *authController) CustomerSignup(ctx *fiber.Ctx) error {
	var req dto.CustomerSignupRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SignupCustomer(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(ctx, "Customer registered successfully", res)
}

func (c *authController) CustomerLogin(ctx *fiber.Ctx) error {
	return c.login(ctx, entity.UserRoleCustomer)
}

func (c *authController) SellerLogin(ctx *fiber.Ctx) error {
	return c.login(ctx, entity.UserRoleSeller)
}

func (c *authController) AdminLogin(ctx *fiber.Ctx) error {
	return c.login(ctx, entity.UserRoleAdmin)
}

func (c *authController) login(ctx *fiber.Ctx, role entity.UserRole) error {
	var req dto.LoginRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), role, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) CreateSeller(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSellerRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateSeller(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return created(ctx, "Seller created successfully", res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Me(ctx.UserContext(), actor.Id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
