package handler

import (
	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/service"
)

func SetupRoutes(app *fiber.App, authMiddleware *service.Middleware, h *Handler) {
	app.Get("/health", h.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authMiddleware.EnsureLoggedOut, h.Register)
	auth.Post("/login", authMiddleware.EnsureLoggedOut, h.Login)
	auth.Post("/recover", authMiddleware.EnsureLoggedOut, h.Recover)
	auth.Get("/me", authMiddleware.EnsureAuthenticated, h.Me)
	auth.Post("/change-password", authMiddleware.EnsureAuthenticated, h.ChangePassword)
	auth.Post("/recovery-key", authMiddleware.EnsureAuthenticated, h.RecoveryKey)

	// fixed paths first, ":name" would swallow them
	characters := api.Group("/characters")
	characters.Post("/", authMiddleware.EnsureAuthenticated, h.CreateCharacter)
	characters.Get("/my", authMiddleware.EnsureAuthenticated, h.MyCharacters)
	characters.Get("/online", h.OnlineCharacters)
	characters.Get("/:name", h.GetCharacter)
	characters.Delete("/:id", authMiddleware.EnsureAuthenticated, h.DeleteCharacter)
	characters.Put("/:id/comment", authMiddleware.EnsureAuthenticated, h.UpdateComment)

	news := api.Group("/news")
	news.Get("/", h.ListNews)
	news.Get("/:id", h.GetNews)
	news.Post("/:id/comments", authMiddleware.EnsureAuthenticated, h.AddComment)

	api.Get("/highscores/:category?", h.Highscores)
}
