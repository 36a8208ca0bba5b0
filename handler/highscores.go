package handler

import (
	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/model"
	"pokeelite_backend/service"
)

func (h *Handler) Highscores(ctx *fiber.Ctx) error {
	category := ctx.Params("category", model.CategoryLevel)
	limit := ctx.QueryInt("limit", service.DefaultHighscoreLimit)

	highscores, err := h.Highscore.Get(ctx.UserContext(), category, limit)
	if err != nil {
		return h.fail(ctx, "Highscores()", err)
	}

	return ctx.JSON(fiber.Map{
		"category":   category,
		"highscores": highscores,
		"count":      len(highscores),
	})
}
