package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"society_hub/internal/config"
	"society_hub/internal/handler"
	"society_hub/internal/middleware"
	"society_hub/internal/repository"
	"society_hub/internal/service"
	"society_hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	appLogger := logger.New(cfg.Log.Level)

	// Подключение к PostgreSQL
	dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	// Инициализация слоёв
	repos := repository.NewRepositories(dbPool, rdb, cfg.Chat.FeedTTL, appLogger)
	services := service.NewServices(repos, cfg, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(services.Auth, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	handlers := handler.NewHandlers(services, cfg, appLogger)

	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.Health.Check)
	router.GET("/server-info", handlers.Health.ServerInfo)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Публичные endpoints
		public := v1.Group("/auth")
		{
			public.POST("/register", rateLimitMiddleware.Limit("register", 10, time.Minute), handlers.Auth.Register)
			public.POST("/login", rateLimitMiddleware.Limit("login", 20, time.Minute), handlers.Auth.Login)
			public.POST("/refresh", handlers.Auth.RefreshToken)
			public.POST("/logout", handlers.Auth.Logout)
		}

		// Защищенные endpoints
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			// Пользователи
			users := protected.Group("/users")
			{
				users.GET("/me", handlers.User.GetMe)
				users.PUT("/me", handlers.User.UpdateMe)
				users.GET("/me/notification-settings", handlers.User.GetNotificationSettings)
				users.PUT("/me/notification-settings", handlers.User.UpdateNotificationSettings)
				users.GET("", handlers.User.ListMembers)
				users.PATCH("/:id/suspend", authMiddleware.RequireAdmin(), handlers.User.SetSuspended)
			}

			// Личные переписки
			conversations := protected.Group("/conversations")
			{
				conversations.POST("", handlers.Chat.StartConversation)
				conversations.GET("", handlers.Chat.ListConversations)
				conversations.GET("/:id/messages", handlers.Chat.GetMessages)
				conversations.POST("/:id/messages", rateLimitMiddleware.Limit("chat", 60, time.Minute), handlers.Chat.SendMessage)
			}

			// Группы
			groups := protected.Group("/groups")
			{
				groups.POST("", handlers.Group.Create)
				groups.GET("", handlers.Group.List)
				groups.GET("/:id", handlers.Group.Get)
				groups.DELETE("/:id", handlers.Group.Delete)
				groups.GET("/:id/members", handlers.Group.GetMembers)
				groups.GET("/:id/messages", handlers.Group.GetMessages)
				groups.POST("/:id/messages", rateLimitMiddleware.Limit("chat", 60, time.Minute), handlers.Group.SendMessage)
			}

			// Общая лента общества
			feed := protected.Group("/society/feed")
			{
				feed.GET("", handlers.SocietyFeed.GetMessages)
				feed.POST("", rateLimitMiddleware.Limit("chat", 60, time.Minute), handlers.SocietyFeed.PostMessage)
			}

			// Бухгалтерия
			transactions := protected.Group("/transactions")
			{
				transactions.POST("", handlers.Transaction.Create)
				transactions.GET("", handlers.Transaction.List)
				transactions.GET("/export", handlers.Transaction.Export)
				transactions.PUT("/:id", handlers.Transaction.Update)
				transactions.DELETE("/:id", handlers.Transaction.Delete)
			}

			// Арендаторы
			tenants := protected.Group("/tenants")
			{
				tenants.POST("", handlers.Tenant.Create)
				tenants.GET("", handlers.Tenant.List)
				tenants.GET("/export", handlers.Tenant.Export)
				tenants.PUT("/:id", handlers.Tenant.Update)
				tenants.DELETE("/:id", handlers.Tenant.Delete)
			}

			// Парковка
			parking := protected.Group("/parking")
			{
				parking.POST("/slots", handlers.Parking.CreateSlot)
				parking.GET("/slots", handlers.Parking.ListSlots)
				parking.GET("/slots/export", handlers.Parking.ExportSlots)
				parking.DELETE("/slots/:id", handlers.Parking.DeleteSlot)
				parking.POST("/slots/:id/assign", handlers.Parking.AssignSlot)
				parking.POST("/slots/:id/unassign", handlers.Parking.UnassignSlot)
				parking.POST("/payments", handlers.Parking.CreatePayment)
				parking.GET("/payments", handlers.Parking.ListPayments)
				parking.PATCH("/payments/:id/paid", handlers.Parking.MarkPaymentPaid)
			}

			// Подрядчики и счета
			vendors := protected.Group("/vendors")
			{
				vendors.POST("", handlers.Vendor.Create)
				vendors.GET("", handlers.Vendor.List)
				vendors.GET("/export", handlers.Vendor.Export)
				vendors.PUT("/:id", handlers.Vendor.Update)
				vendors.DELETE("/:id", handlers.Vendor.Delete)
			}
			invoices := protected.Group("/invoices")
			{
				invoices.POST("", handlers.Vendor.CreateInvoice)
				invoices.GET("", handlers.Vendor.ListInvoices)
				invoices.PATCH("/:id/status", handlers.Vendor.SetInvoiceStatus)
			}

			// Лиды, бронирования, договоры аренды
			leads := protected.Group("/leads")
			{
				leads.POST("", handlers.Lead.CreateLead)
				leads.GET("", handlers.Lead.ListLeads)
				leads.GET("/export", handlers.Lead.ExportLeads)
				leads.PUT("/:id", handlers.Lead.UpdateLead)
				leads.PATCH("/:id/status", handlers.Lead.SetLeadStatus)
			}
			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.Lead.CreateBooking)
				bookings.GET("", handlers.Lead.ListBookings)
				bookings.PATCH("/:id/status", handlers.Lead.SetBookingStatus)
			}
			agreements := protected.Group("/agreements")
			{
				agreements.POST("", handlers.Lead.CreateAgreement)
				agreements.GET("", handlers.Lead.ListAgreements)
				agreements.PATCH("/:id/status", handlers.Lead.SetAgreementStatus)
			}

			// Персонал
			staff := protected.Group("/staff")
			{
				staff.POST("", handlers.Staff.Create)
				staff.GET("", handlers.Staff.List)
				staff.GET("/export", handlers.Staff.Export)
				staff.PUT("/:id", handlers.Staff.Update)
				staff.DELETE("/:id", handlers.Staff.Delete)
			}

			// Уведомления
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", handlers.Notification.List)
				notifications.PATCH("/:id/read", handlers.Notification.MarkRead)
				notifications.POST("/read-all", handlers.Notification.MarkAllRead)
			}

			// WebSocket для живой ленты
			protected.GET("/ws/feed", handlers.WebSocket.HandleFeed)
		}
	}

	return router
}
