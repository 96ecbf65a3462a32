package controller

import (
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	CustomerPayments(ctx *fiber.Ctx) error
	SellerPayments(ctx *fiber.Ctx) error
	SellerSummary(ctx *fiber.Ctx) error
	SubscriptionPayments(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
	auth    fiber.Handler
	log     logger.ILogger
}

func NewPaymentController(service service.IPaymentService, auth fiber.Handler, log logger.ILogger) IPaymentController {
	return &paymentController{service: service, auth: auth, log: log}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Post("/midtrans/notification", c.Webhook)

	customerOnly := serverutils.RequireRoles(entity.UserRoleCustomer)
	sellerOnly := serverutils.RequireRoles(entity.UserRoleSeller)

	h.Post("/", c.auth, customerOnly, c.Create)
	h.Get("/customer", c.auth, customerOnly, c.CustomerPayments)
	h.Get("/seller/summary", c.auth, sellerOnly, c.SellerSummary)
	h.Get("/seller", c.auth, sellerOnly, c.SellerPayments)
	h.Get("/subscription/:subscriptionId", c.auth, c.SubscriptionPayments)
}

func (c *paymentController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return created(ctx, "Payment recorded", res)
}

// Webhook answers non-2xx only for failures the gateway should retry.
func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.log.Warn("WEBHOOK", "Body parsing failed", map[string]interface{}{"error": err.Error()})
		return ctx.SendStatus(fiber.StatusBadRequest)
	}

	c.log.Info("WEBHOOK", "Notification received", map[string]interface{}{
		"order_id": req.OrderId,
		"status":   req.TransactionStatus,
	})

	if err := c.service.HandleNotification(ctx.UserContext(), &req); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			c.log.Warn("WEBHOOK", "Notification rejected", map[string]interface{}{
				"order_id": req.OrderId,
				"error":    err.Error(),
			})
		}
		return err
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *paymentController) CustomerPayments(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.DateRangeQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListForCustomer(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get payments", res))
}

func (c *paymentController) SellerPayments(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	var query dto.SellerPaymentQuery
	if err := parseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListForSeller(ctx.UserContext(), actor, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get payments", res))
}

func (c *paymentController) SellerSummary(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SellerSummary(ctx.UserContext(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get earnings summary", res))
}

func (c *paymentController) SubscriptionPayments(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := paramId(ctx, "subscriptionId")
	if err != nil {
		return err
	}

	res, err := c.service.ListForSubscription(ctx.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription payments", res))
}
