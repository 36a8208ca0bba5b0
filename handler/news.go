package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/model"
	"pokeelite_backend/service"
)

func (h *Handler) ListNews(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", service.DefaultNewsLimit)

	news, err := h.News.List(ctx.UserContext(), page, limit)
	if err != nil {
		return h.fail(ctx, "ListNews()", err)
	}

	return ctx.JSON(news)
}

func (h *Handler) GetNews(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return h.badRequest(ctx, "Invalid news id.")
	}

	news, comments, err := h.News.Get(ctx.UserContext(), id)
	if err != nil {
		return h.fail(ctx, "GetNews()", err)
	}

	return ctx.JSON(fiber.Map{"news": news, "comments": comments})
}

func (h *Handler) AddComment(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return h.badRequest(ctx, "Invalid news id.")
	}

	var data model.AddCommentAPI

	if err := ctx.BodyParser(&data); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := data.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	comment, err := h.News.AddComment(ctx.UserContext(), id, identity(ctx).AccountID, &data)
	if err != nil {
		return h.fail(ctx, "AddComment()", err)
	}

	return ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"error":   false,
		"message": "Comment added successfully",
		"comment": comment,
	})
}
