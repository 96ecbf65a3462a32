package bootstrap

import (
	"context"
	"log"
	"time"

	"milk-platform-be/internal/config"
	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/controller"
	"milk-platform-be/internal/handler"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/pkg/mailer"
	"milk-platform-be/internal/pkg/paymentgateway"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/internal/service"
	"milk-platform-be/internal/websocket"
	pktNats "milk-platform-be/pkg/nats"
	"milk-platform-be/pkg/schedule"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	MilkController         controller.IMilkController
	OrderController        controller.IOrderController
	SubscriptionController controller.ISubscriptionController
	PaymentController      controller.IPaymentController
	RatingController       controller.IRatingController
	AdminController        controller.IAdminController
	HealthController       controller.IHealthController

	// Background services, run by main
	NotificationConsumer service.INotificationConsumer
	SweepScheduler       service.ISweepScheduler
	EventAuditor         *service.EventAuditor

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Optional infrastructure; nil when unreachable
	NatsPublisher  *pktNats.Publisher
	NatsSubscriber *pktNats.Subscriber
	Redis          *redis.Client

	Logger logger.ILogger
	pubSub *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLogFilePath)
	calendar := schedule.NewCalendar(cfg.App.Location(), time.Now)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)
	gateway := paymentgateway.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransIsProduction)
	if !gateway.Enabled() {
		log.Println("[INFO] Midtrans server key not set: payments are recorded as completed")
	}

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)

	// 3. Infrastructure
	natsPub, natsSub := connectNats(cfg.App.NatsURL)

	rdb := connectRedis(cfg.App.RedisURL)

	// WebSocket hub
	wsHub := websocket.NewHub(rdb, wsLogger)

	var forwarder service.EventForwarder
	if natsPub != nil {
		forwarder = natsPub
	}
	notifier := service.NewEventNotifier(pubSub, constant.NotificationTopic, sysLogger)
	consumer := service.NewNotificationConsumer(pubSub, constant.NotificationTopic, wsHub, forwarder, wsLogger)

	// 4. Services
	authService := service.NewAuthService(uowFactory, emailService, service.AuthSettings{
		JwtSecret: cfg.Auth.JwtSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
		LoginURL:  cfg.App.ClientURL + "/seller/login",
	}, sysLogger)
	milkService := service.NewMilkService(uowFactory, cache.New(5*time.Minute, 10*time.Minute), notifier)
	orderService := service.NewOrderService(uowFactory, calendar, notifier)
	subscriptionService := service.NewSubscriptionService(uowFactory, calendar, notifier, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, gateway, calendar, notifier, sysLogger)
	ratingService := service.NewRatingService(uowFactory, calendar, notifier)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	sweep, err := service.NewSweepScheduler(subscriptionService, cfg.Scheduler.SubscriptionSweepCron, sysLogger)
	if err != nil {
		return nil, err
	}

	// 5. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	loginLimiter := serverutils.PerMinute(cfg.Auth.RateLimitPerMinute)

	return &Container{
		AuthController:         controller.NewAuthController(authService, auth, loginLimiter),
		MilkController:         controller.NewMilkController(milkService, auth),
		OrderController:        controller.NewOrderController(orderService, auth),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, auth),
		PaymentController:      controller.NewPaymentController(paymentService, auth, sysLogger),
		RatingController:       controller.NewRatingController(ratingService, auth),
		AdminController:        controller.NewAdminController(adminService, auth),
		HealthController:       controller.NewHealthController(calendar),

		NotificationConsumer: consumer,
		SweepScheduler:       sweep,
		EventAuditor:         service.NewEventAuditor(sysLogger),

		NotificationHandler: handler.NewNotificationHandler(wsHub, cfg.Auth.JwtSecret, wsLogger),
		WebSocketHub:        wsHub,

		NatsPublisher:  natsPub,
		NatsSubscriber: natsSub,
		Redis:          rdb,

		Logger: sysLogger,
		pubSub: pubSub,
	}, nil
}

// connectNats returns nils when NATS is not configured or unreachable; events then stay in-process.
func connectNats(url string) (*pktNats.Publisher, *pktNats.Subscriber) {
	if url == "" {
		return nil, nil
	}
	pub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		return nil, nil
	}
	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		return pub, nil
	}
	return pub, sub
}

// connectRedis returns nil when Redis is not configured or unreachable; the hub then runs single-instance.
func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. WebSocket relay disabled", err)
		rdb.Close()
		return nil
	}
	return rdb
}

// Close releases the bus and external connections.
func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	if c.NatsSubscriber != nil {
		c.NatsSubscriber.Close()
	}
	if c.NatsPublisher != nil {
		c.NatsPublisher.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	_ = c.Logger.Sync()
}
