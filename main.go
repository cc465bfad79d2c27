package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"foodshare-be/internal/config"
	"foodshare-be/internal/controllers"
	"foodshare-be/internal/database"
	"foodshare-be/internal/entities"
	"foodshare-be/internal/logger"
	"foodshare-be/internal/mailer"
	"foodshare-be/internal/middleware"
	"foodshare-be/internal/queue"
	"foodshare-be/internal/repository"
	"foodshare-be/internal/service"
	"foodshare-be/internal/session"
	"foodshare-be/internal/worker"
)

func main() {
	mode := flag.String("mode", "server", "run mode: server or worker")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch *mode {
	case "server":
		err = runServer(ctx, cfg, log)
	case "worker":
		err = runWorker(ctx, cfg, log)
	default:
		err = fmt.Errorf("unknown mode %q (use 'server' or 'worker')", *mode)
	}
	if err != nil {
		log.Error("application failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

// newSender picks SMTP delivery when configured, otherwise logs emails.
func newSender(cfg *config.Config, log *slog.Logger) (mailer.Sender, error) {
	if cfg.SMTPURL == "" {
		log.Warn("SMTP not configured, emails will only be logged")
		return mailer.NewLogSender(log), nil
	}
	return mailer.NewSMTPSender(cfg.SMTPURL, cfg.MailFrom, cfg.MailName)
}

// runWorker consumes email tasks from RabbitMQ and delivers them.
func runWorker(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.RabbitMQURL == "" {
		return fmt.Errorf("worker mode requires RABBITMQ_URL")
	}

	client, err := queue.NewRabbitMQClient(cfg.RabbitMQURL, cfg.EmailQueueName, log)
	if err != nil {
		return err
	}
	defer client.Close()

	sender, err := newSender(cfg, log)
	if err != nil {
		return err
	}

	log.Info("email worker started", "queue", cfg.EmailQueueName)
	return worker.Run(ctx, client, sender, log)
}

// runServer wires the repositories, services and controllers and serves
// the HTTP API.
func runServer(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("connected to database, migrations applied")

	// Session store: Redis when configured, in-memory otherwise.
	var sessions session.Store
	if cfg.RedisURL != "" {
		sessions, err = session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("connected to Redis session store")
	} else {
		log.Warn("REDIS_URL not set, using in-memory sessions")
		sessions = session.NewMemoryStore()
	}

	// Email path: queue to RabbitMQ when configured, otherwise send
	// directly off the request goroutine. Either way the response never
	// waits on delivery.
	var publisher queue.TaskPublisher
	if cfg.RabbitMQURL != "" {
		client, err := queue.NewRabbitMQClient(cfg.RabbitMQURL, cfg.EmailQueueName, log)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer client.Close()
		publisher = client
		log.Info("connected to RabbitMQ", "queue", cfg.EmailQueueName)
	} else {
		sender, err := newSender(cfg, log)
		if err != nil {
			return err
		}
		log.Warn("RABBITMQ_URL not set, sending emails without a queue")
		publisher = queue.NewDirectPublisher(sender, log)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	pantryRepo := repository.NewPantryRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	resetTTL := time.Duration(cfg.ResetTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, publisher, cfg.BaseURL, resetTTL, log)
	userService := service.NewUserService(userRepo, itemRepo)
	itemService := service.NewItemService(itemRepo, userRepo, publisher, log)
	ratingService := service.NewRatingService(ratingRepo, itemRepo)
	pantryService := service.NewPantryService(pantryRepo)
	adminService := service.NewAdminService(userRepo, itemRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, sessions, sessionTTL)
	userController := controllers.NewUserController(userService)
	itemController := controllers.NewItemController(itemService, ratingService)
	pantryController := controllers.NewPantryController(pantryService)
	adminController := controllers.NewAdminController(adminService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	router := gin.Default()
	router.Use(generalRateLimiter.LimitMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := router.Group("/users")
	{
		// Credential endpoints get the stricter limiter
		users.POST("/register", authRateLimiter.LimitMiddleware(), authController.Register)
		users.POST("/login", authRateLimiter.LimitMiddleware(), authController.Login)
		users.POST("/logout", authController.Logout)
		users.GET("/verify-email/:token", authController.VerifyEmail)
		users.POST("/forgot-password", authRateLimiter.LimitMiddleware(), authController.ForgotPassword)
		users.GET("/reset-password/:token", authController.ResetPasswordForm)
		users.POST("/reset-password/:token", authController.ResetPassword)

		profile := users.Group("")
		profile.Use(middleware.RequireAuth(sessions))
		{
			profile.GET("/profile", userController.Profile)
			profile.GET("/profile/edit", userController.ProfileEditForm)
			profile.POST("/profile/edit", userController.ProfileEdit)
		}
	}

	items := router.Group("/items")
	{
		items.GET("", itemController.List)
		items.GET("/search", itemController.Search)
		items.GET("/:id", itemController.Get)

		items.POST("", middleware.RequireAuth(sessions), middleware.RequireRole(entities.RoleDonor), itemController.Create)
		items.GET("/:id/edit", middleware.RequireAuth(sessions), itemController.EditForm)
		items.PUT("/:id", middleware.RequireAuth(sessions), itemController.Update)
		items.PUT("/:id/claim", middleware.RequireAuth(sessions), middleware.RequireRole(entities.RolePantry), itemController.Claim)
		items.POST("/:id/ratings", middleware.RequireAuth(sessions), itemController.Rate)
	}

	pantries := router.Group("/pantries")
	{
		pantries.POST("", pantryController.Create)
		pantries.GET("", pantryController.List)
		pantries.GET("/:id/edit", pantryController.EditForm)
		pantries.PUT("/:id", pantryController.Update)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(sessions), middleware.RequireRole(entities.RoleAdmin))
	{
		admin.POST("/users", adminController.CreateUser)
		admin.DELETE("/users/:id", adminController.DeleteUser)
		admin.DELETE("/items/:id", adminController.DeleteItem)
		admin.GET("/dashboard", adminController.Dashboard)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
