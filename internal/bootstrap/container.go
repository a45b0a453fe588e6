package bootstrap

import (
	"context"

	"adorder-be/internal/config"
	"adorder-be/internal/controller"
	"adorder-be/internal/handler"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/mailer"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/repository/memory"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/internal/service"
	"adorder-be/internal/websocket"
	"adorder-be/pkg/admin/dashboard"
	"adorder-be/pkg/admin/user"
	"adorder-be/pkg/events"

	pktNats "adorder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	mailTopic    = "mail.outbox"
	devJWTSecret = "dev-only-insecure-secret"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OrderController        controller.IOrderController
	CancellationController controller.ICancellationController
	PaymentController      controller.IPaymentController
	ProductController      controller.IProductController
	WalletController       controller.IWalletController
	CustomerController     controller.ICustomerController
	AdminController        controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	jwtSecret := cfg.App.JWTSecret
	if jwtSecret == "" {
		sysLogger.Warn("BOOTSTRAP", "JWT_SECRET not set, using development secret", nil)
		jwtSecret = devJWTSecret
	}
	if cfg.Payment.CallbackSecret == "" {
		sysLogger.Warn("BOOTSTRAP", "PAYMENT_CALLBACK_SECRET not set, PG callbacks are accepted unsigned", nil)
	}
	auth := serverutils.JwtMiddleware(jwtSecret)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		sysLogger,
	)

	// 2. Mail outbox
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	mailPublisher := service.NewPublisherService(mailTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, mailTopic, emailService, sysLogger)

	// 3. Infrastructure
	// NATS
	var bus events.Bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
	} else {
		bus = natsPub
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
	}
	eventPublisher := events.NewNatsPublisher(bus, sysLogger)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, realtime stays instance-local", map[string]interface{}{"error": err.Error()})
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// 4. Services
	catalogCache := memory.NewCatalogCache(cfg.Catalog.CacheTTL)
	productService := service.NewProductService(uowFactory, catalogCache)
	ledgerService := service.NewLedgerService(uowFactory)
	orderService := service.NewOrderService(uowFactory, productService, eventPublisher, sysLogger)
	cancellationService := service.NewCancellationService(
		uowFactory,
		eventPublisher,
		mailPublisher,
		sysLogger,
		cfg.Ledger.RefundCreditOnApproval,
	)
	messageService := service.NewMessageService(uowFactory, eventPublisher)
	paymentService := service.NewPaymentService(uowFactory, eventPublisher, mailPublisher, sysLogger, service.PaymentConfig{
		CallbackSecret: cfg.Payment.CallbackSecret,
		MinAmount:      cfg.Payment.MinAmount,
	})
	customerService := service.NewCustomerService(uowFactory)

	// Admin Domain Components
	userManager := user.NewManager(sysLogger, eventPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	authService := service.NewAuthService(uowFactory, dashboardAggregator, sysLogger, jwtSecret, cfg.App.JWTTTL)
	adminService := service.NewAdminService(uowFactory, sysLogger, userManager, eventPublisher)

	// Realtime relay from the bus to the hub
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	notifHandler := handler.NewNotificationHandler(wsHub, jwtSecret, wsLogger)

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService, auth),
		OrderController:        controller.NewOrderController(orderService, messageService, auth),
		CancellationController: controller.NewCancellationController(cancellationService, auth),
		PaymentController:      controller.NewPaymentController(paymentService, auth),
		ProductController:      controller.NewProductController(productService, auth),
		WalletController:       controller.NewWalletController(ledgerService, auth),
		CustomerController:     controller.NewCustomerController(customerService, auth),
		AdminController:        controller.NewAdminController(adminService, orderService, ledgerService, auth),

		ConsumerService:     consumerService,
		NotificationService: notifService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}

// RegisterRoutes mounts every controller under the router.
func (c *Container) RegisterRoutes(api fiber.Router) {
	c.AuthController.RegisterRoutes(api)
	c.OrderController.RegisterRoutes(api)
	c.CancellationController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)
	c.ProductController.RegisterRoutes(api)
	c.WalletController.RegisterRoutes(api)
	c.CustomerController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)
}
