package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	config "pokeelite_backend/config"
	"pokeelite_backend/handler"
	"pokeelite_backend/model"
	"pokeelite_backend/repository"
	"pokeelite_backend/service"
)

func StartServer() {
	cfg, errRead := config.Read("./cfg.json")
	if errRead != nil {
		log.Fatalf("error reading cfg.json: %v", errRead)
	}

	logFileName := "log_" + time.Now().Format("2006-01-02_15-04-05") + ".log"
	loggerService, err := service.NewLoggerService(logFileName, cfg.Version)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer loggerService.Shutdown()

	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gameRepo, errRepo := repository.New(startCtx, cfg.DBDriver, cfg.Dsn)
	if errRepo != nil {
		loggerService.Exception(fmt.Sprintf("error creating repository: %v", errRepo))
		return
	}
	defer gameRepo.Close()

	if cfg.AutoMigrate {
		if err = gameRepo.Bootstrap(startCtx, cfg.TemplateCharacter); err != nil {
			loggerService.Exception(fmt.Sprintf("error migrating database: %v", err))
			return
		}
	}

	accountService, err := service.NewAccountService(gameRepo, service.NewCredentialHasher(cfg.HashCost), service.AccountOptions{
		PremiumDays:  cfg.PremiumDaysDefault,
		TemplateName: cfg.TemplateCharacter,
	})
	if err != nil {
		loggerService.Exception(fmt.Sprintf("error creating account service: %v", err))
		return
	}
	charService := service.NewCharacterService(gameRepo, service.CharacterOptions{
		MaxPerAccount: cfg.MaxCharactersPerAccount,
		TemplateName:  cfg.TemplateCharacter,
	})
	tokenService := service.NewTokenService(cfg.TokenSigningKey, cfg.TokenExpiry, cfg.TokenIssuer)
	newsService := service.NewNewsService(gameRepo)
	highscoreService := service.NewHighscoreService(gameRepo, cfg.TemplateCharacter)

	var notifier *service.Notifier
	if cfg.EmailEnabled() {
		emailService := service.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		notifier = service.NewNotifier(emailService, loggerService, cfg.ServerName)
	}

	authMiddleware := service.NewMiddleware(tokenService, accountService, loggerService)
	gameHandler := handler.New(accountService, charService, tokenService, newsService, highscoreService, loggerService, notifier, gameRepo)

	fiberConfig := fiber.Config{
		BodyLimit:               4 * 1024 * 10,
		Concurrency:             1024,
		ReadTimeout:             5 * time.Second,
		WriteTimeout:            5 * time.Second,
		ReadBufferSize:          4 * 1024 * 10,
		WriteBufferSize:         4 * 1024 * 10,
		Prefork:                 false,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"127.0.0.1", "::1"},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return ctx.Status(fiberErr.Code).JSON(model.BaseResponse{Error: true, Message: fiberErr.Message})
			}
			loggerService.Exception(fmt.Sprintf("unhandled error on %s %s: %v", ctx.Method(), ctx.Path(), err))
			return ctx.Status(fiber.StatusInternalServerError).JSON(model.BaseResponse{
				Error:   true,
				Message: "An internal error occurred.",
			})
		},
	}
	app := fiber.New(fiberConfig)
	app.Use(recover.New(), logger.New(), compress.New())

	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowOrigins: cfg.AllowOrigins,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        500,
		Expiration: 1 * time.Hour,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			realIP := ctx.Get("X-Real-IP")
			if realIP == "" {
				realIP = ctx.IP()
			}
			return realIP
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			ip := ctx.Get("X-Real-IP")
			if ip == "" {
				ip = ctx.IP()
			}
			loggerService.Info(fmt.Sprintf("Rate limit reached for IP: %s", ip))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   true,
				"message": "You've reached the limit of HTTP requests. Try again later.",
			})
		},
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.SetupRoutes(app, authMiddleware, gameHandler)

	// Route for 404
	app.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(model.BaseResponse{
			Error:   true,
			Message: "The requested resource was not found.",
		})
	})

	// Start the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	loggerService.Info(fmt.Sprintf("Starting server on %s", cfg.Port))
	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			loggerService.Exception(fmt.Sprintf("error starting server: %v", err))
			stop <- syscall.SIGTERM
		}
	}()

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				retentionPeriod := 7 * 24 * time.Hour
				if err := loggerService.ClearOldLogs(retentionPeriod); err != nil {
					loggerService.Exception(fmt.Sprintf("Error cleaning old logs: %v", err))
				}
			case <-done:
				loggerService.Info("Stopping log cleanup ticker.")
				return
			}
		}
	}()

	<-stop

	loggerService.Info("Shutting down server...")
	if err = app.ShutdownWithTimeout(10 * time.Second); err != nil {
		loggerService.Exception(fmt.Sprintf("error during shutdown: %v", err))
	}

	close(done)
}
