package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	authrepo "github.com/cornellb28/orderbbs-app/auth/repository"
	authsvc "github.com/cornellb28/orderbbs-app/auth/service"
	checkoutpkg "github.com/cornellb28/orderbbs-app/checkout"
	customerrepo "github.com/cornellb28/orderbbs-app/customer/repository"
	customersvc "github.com/cornellb28/orderbbs-app/customer/service"
	eventrepo "github.com/cornellb28/orderbbs-app/event/repository"
	eventsvc "github.com/cornellb28/orderbbs-app/event/service"
	api "github.com/cornellb28/orderbbs-app/handler"
	"github.com/cornellb28/orderbbs-app/middleware"
	"github.com/cornellb28/orderbbs-app/notify"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	orderrepo "github.com/cornellb28/orderbbs-app/order/repository"
	ordersvc "github.com/cornellb28/orderbbs-app/order/service"
	"github.com/cornellb28/orderbbs-app/payment"
	productrepo "github.com/cornellb28/orderbbs-app/product/repository"
	productsvc "github.com/cornellb28/orderbbs-app/product/service"
	"github.com/cornellb28/orderbbs-app/realtime"
	reminderpkg "github.com/cornellb28/orderbbs-app/reminder"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	db := setupDatabase()

	pickupLoc, err := time.LoadLocation(orderpkg.PickupTimeZone)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load pickup time zone")
	}

	// Repositories.
	eventRepo := eventrepo.NewGormEventRepo(db)
	productRepo := productrepo.NewGormProductRepo(db)
	orderRepo := orderrepo.NewGormOrderRepo(db)
	customerRepo := customerrepo.NewGormCustomerRepo(db)
	authRepo := authrepo.NewGormAuthRepo(db)

	// External senders and payment processor.
	stripeClient := payment.NewStripeClient(os.Getenv("STRIPE_SECRET_KEY"))
	stripeVerifier := payment.NewStripeWebhookVerifier(os.Getenv("STRIPE_WEBHOOK_SECRET"))
	emailSender := notify.NewResendSender(
		os.Getenv("RESEND_API_KEY"),
		envOr("EMAIL_FROM", "Bowl & Broth Society <orders@bowlandbrothsociety.com>"),
	)
	smsSender := notify.NewTwilioSender(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_FROM_NUMBER"),
	)

	// Services.
	eventService := eventsvc.NewEventService(eventRepo)
	productService := productsvc.NewProductService(productRepo)
	orderService := ordersvc.NewOrderService(orderRepo)
	customerService := customersvc.NewCustomerService(customerRepo, orderRepo)
	authService := authsvc.NewAuthService(authRepo)
	checkoutService := checkoutpkg.New(eventRepo, productRepo, orderRepo, stripeClient)
	reminderService := reminderpkg.New(eventRepo, orderRepo, smsSender, pickupLoc)

	hub := realtime.NewHub()
	siteURL := envOr("SITE_URL", "http://localhost:3000")
	confirmer := checkoutpkg.NewConfirmer(orderRepo, emailSender, hub, siteURL)

	// Handlers.
	publicHandler := api.NewPublicHandler(eventService, orderService, customerService, checkoutService)
	adminHandler := api.NewAdminHandler(eventService, orderService, productService, customerService)
	webhookHandler := api.NewWebhookHandler(stripeVerifier, confirmer)
	cronHandler := api.NewCronHandler(reminderService)
	authHandler := api.NewAuthHandler(authService)
	wsHandler := api.NewWSHandler(hub)

	r := gin.Default()
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Stripe posts raw JSON here; it stays outside the versioned API group.
	r.POST("/api/stripe/webhook", webhookHandler.HandleStripe())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/events/active", publicHandler.GetActiveEvent())
		v1.POST("/checkout", publicHandler.Checkout())
		v1.POST("/subscribe", publicHandler.Subscribe())
		v1.GET("/orders/:id", publicHandler.GetReceipt())
		v1.GET("/orders/:id/calendar.ics", publicHandler.CalendarExport())

		v1.POST("/admin/login", authHandler.Login())

		cron := v1.Group("/cron", middleware.RequireCron())
		{
			cron.POST("/reminders/:kind", cronHandler.RunReminders())
		}

		admin := v1.Group("/admin", middleware.RequireAdmin(authRepo))
		{
			admin.GET("/events", adminHandler.ListEvents())
			admin.POST("/events", adminHandler.CreateEvent())
			admin.GET("/events/:id", adminHandler.GetEvent())
			admin.PATCH("/events/:id", adminHandler.UpdateEvent())
			admin.DELETE("/events/:id", adminHandler.DeleteEvent())
			admin.POST("/events/:id/activate", adminHandler.ActivateEvent())
			admin.GET("/events/:id/menu", adminHandler.ListEventMenu())
			admin.PUT("/events/:id/menu", adminHandler.SetEventMenu())
			admin.GET("/events/:id/orders", adminHandler.ListEventOrders())

			admin.GET("/orders/:id", adminHandler.GetOrder())

			admin.GET("/products", adminHandler.ListProducts())
			admin.POST("/products", adminHandler.CreateProduct())
			admin.PATCH("/products/:id", adminHandler.UpdateProduct())

			admin.GET("/customers", adminHandler.ListCustomers())
			admin.GET("/customers/:email", adminHandler.GetCustomer())
			admin.PATCH("/customers/:email", adminHandler.UpdateCustomer())

			admin.GET("/ws", wsHandler.AdminFeed())
		}
	}

	addr := ":" + envOr("PORT", "8080")
	log.Info().Str("addr", addr).Msg("listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
