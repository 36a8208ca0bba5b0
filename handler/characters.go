package handler

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/model"
)

func (h *Handler) CreateCharacter(ctx *fiber.Ctx) error {
	var data model.CreateCharacterAPI

	if err := ctx.BodyParser(&data); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := data.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	character, err := h.Char.Create(ctx.UserContext(), identity(ctx).AccountID, &data)
	if err != nil {
		return h.fail(ctx, "CreateCharacter()", err)
	}

	return ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"error":     false,
		"message":   "Character created successfully",
		"character": character,
	})
}

func (h *Handler) MyCharacters(ctx *fiber.Ctx) error {
	characters, err := h.Char.ListByAccount(ctx.UserContext(), identity(ctx).AccountID)
	if err != nil {
		return h.fail(ctx, "MyCharacters()", err)
	}

	return ctx.JSON(fiber.Map{"characters": characters})
}

func (h *Handler) OnlineCharacters(ctx *fiber.Ctx) error {
	players, err := h.Char.ListOnline(ctx.UserContext())
	if err != nil {
		return h.fail(ctx, "OnlineCharacters()", err)
	}

	return ctx.JSON(fiber.Map{"players": players, "count": len(players)})
}

func (h *Handler) GetCharacter(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return h.badRequest(ctx, "Invalid character name.")
	}

	character, err := h.Char.FindByName(ctx.UserContext(), name)
	if err != nil {
		return h.fail(ctx, "GetCharacter()", err)
	}

	skills, err := h.Char.Skills(ctx.UserContext(), character.ID)
	if err != nil {
		return h.fail(ctx, "GetCharacter()", err)
	}

	if character.HideChar {
		character.AccountNickname = ""
	}

	return ctx.JSON(fiber.Map{"character": character, "skills": skills})
}

func (h *Handler) DeleteCharacter(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return h.badRequest(ctx, "Invalid character id.")
	}

	deleted, err := h.Char.Delete(ctx.UserContext(), id, identity(ctx).AccountID)
	if err != nil {
		return h.fail(ctx, "DeleteCharacter()", err)
	}
	if !deleted {
		return h.fail(ctx, "DeleteCharacter()", model.ErrNotFoundOrNotOwned)
	}

	return ctx.JSON(model.BaseResponse{Error: false, Message: "Character deleted successfully"})
}

func (h *Handler) UpdateComment(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return h.badRequest(ctx, "Invalid character id.")
	}

	var data model.UpdateCommentAPI

	if err := ctx.BodyParser(&data); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := data.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	belongs, err := h.Char.BelongsToAccount(ctx.UserContext(), id, identity(ctx).AccountID)
	if err != nil {
		return h.fail(ctx, "UpdateComment()", err)
	}
	if !belongs {
		return h.fail(ctx, "UpdateComment()", model.ErrForbidden)
	}

	if err = h.Char.UpdateComment(ctx.UserContext(), id, data.Comment, data.HideChar); err != nil {
		return h.fail(ctx, "UpdateComment()", err)
	}

	return ctx.JSON(model.BaseResponse{Error: false, Message: "Comment updated successfully"})
}
