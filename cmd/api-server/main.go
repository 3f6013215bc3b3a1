package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"innervoice/database"
	"innervoice/internal/config"
	"innervoice/internal/http-api/handler"
	"innervoice/internal/http-api/middleware"
	"innervoice/internal/http-api/repository"
	"innervoice/internal/http-api/service"
	"innervoice/internal/mailer"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	if err := database.Seed(db, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("could not seed database")
	}

	// Redis is optional: without it the admin stats are computed per request.
	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		cache = redis.NewClient(opts)
	}

	// Mail: real SMTP when configured, log-only otherwise so local
	// development works without a mail server.
	var mail service.MailSender
	if cfg.SMTPHost != "" {
		mail, err = mailer.NewMailer(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not configure mailer")
		}
	} else {
		logger.Warn().Msg("SMTP not configured, emails will be logged instead of sent")
		mail = logMailer{logger: logger}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	confessionRepo := repository.NewConfessionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, mail, cfg)
	confessionService := service.NewConfessionService(confessionRepo, categoryRepo)
	commentService := service.NewCommentService(commentRepo, confessionRepo)
	likeService := service.NewLikeService(likeRepo, confessionRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	adminService := service.NewAdminService(
		userRepo,
		confessionRepo,
		categoryRepo,
		cache,
		time.Duration(cfg.CacheTTL)*time.Second,
		logger,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	adminAuthHandler := handler.NewAdminAuthHandler(authService)
	confessionHandler := handler.NewConfessionHandler(confessionService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	adminHandler := handler.NewAdminHandler(adminService)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	api := r.Group("/api")

	// Public routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/verify", authHandler.VerifyOtp)
		authGroup.POST("/resend-otp", authHandler.ResendOtp)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}
	api.GET("/confessions", confessionHandler.List)
	api.GET("/confessions/:id", confessionHandler.Get)
	api.GET("/confessions/:id/comments", commentHandler.Index)
	api.GET("/categories", categoryHandler.List)
	api.POST("/admin/login", adminAuthHandler.Login)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		authed.GET("/me", authHandler.Me)
		authed.POST("/logout", authHandler.Logout)

		authed.POST("/confessions", confessionHandler.Create)
		authed.GET("/my-confessions", confessionHandler.MyConfessions)
		authed.PUT("/confessions/:id", confessionHandler.Update)
		authed.DELETE("/confessions/:id", confessionHandler.Delete)

		authed.POST("/confessions/:id/like", likeHandler.Like)
		authed.DELETE("/confessions/:id/like", likeHandler.Unlike)
		authed.GET("/confessions/:id/like/check", likeHandler.Check)

		authed.POST("/confessions/:id/comments", commentHandler.Store)
		authed.PUT("/comments/:id", commentHandler.Update)
		authed.DELETE("/comments/:id", commentHandler.Destroy)
		authed.GET("/comments/:id/replies", commentHandler.GetReplies)
		authed.POST("/comments/:id/replies", commentHandler.AddReply)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	{
		admin.GET("/me", adminAuthHandler.Me)
		admin.POST("/logout", adminAuthHandler.Logout)

		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/stats", adminHandler.Stats)

		admin.GET("/categories", categoryHandler.List)
		admin.GET("/categories/:id", categoryHandler.Get)
		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// logMailer writes outgoing mail to the log instead of sending it.
type logMailer struct {
	logger zerolog.Logger
}

func (m logMailer) Send(to, subject, body string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("email (not sent)")
	return nil
}
