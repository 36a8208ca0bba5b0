package handler

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/model"
)

// authResponse issues a token for account and builds the response around it.
func (h *Handler) authResponse(account *model.AccountAPI, message string) (*model.AuthResponse, error) {
	token, expiresAt, err := h.Token.Issue(account.ID, account.Name, account.CredentialVersion)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		BaseResponse: model.BaseResponse{Error: false, Message: message},
		Token:        token,
		ExpiresAt:    &expiresAt,
		Account:      account,
	}, nil
}

func (h *Handler) Register(ctx *fiber.Ctx) error {
	var registerData model.RegisterAPI

	if err := ctx.BodyParser(&registerData); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := registerData.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	account, character, err := h.Account.Register(ctx.UserContext(), &registerData)
	if err != nil {
		return h.fail(ctx, "Register()", err)
	}

	resp, err := h.authResponse(account, "Account created successfully")
	if err != nil {
		return h.fail(ctx, "Register()", err)
	}
	resp.Character = character

	h.Logger.Info(fmt.Sprintf("Register(): account %s created", account.Name))
	h.Notifier.Welcome(account.Email, account.Name)

	return ctx.Status(http.StatusCreated).JSON(resp)
}

func (h *Handler) Login(ctx *fiber.Ctx) error {
	var loginData model.LoginAPI

	if err := ctx.BodyParser(&loginData); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := loginData.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	account, err := h.Account.ValidateLogin(ctx.UserContext(), loginData.Name, loginData.Password)
	if err != nil {
		return h.fail(ctx, "Login()", err)
	}

	resp, err := h.authResponse(account, "Login successful")
	if err != nil {
		return h.fail(ctx, "Login()", err)
	}

	return ctx.JSON(resp)
}

func (h *Handler) Me(ctx *fiber.Ctx) error {
	account, err := h.Account.FindByID(ctx.UserContext(), identity(ctx).AccountID)
	if err != nil {
		return h.fail(ctx, "Me()", err)
	}

	return ctx.JSON(fiber.Map{"account": account})
}

// ChangePassword answers with a fresh token; the one used for this request
// stops working.
func (h *Handler) ChangePassword(ctx *fiber.Ctx) error {
	var data model.ChangePasswordAPI

	if err := ctx.BodyParser(&data); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := data.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	id := identity(ctx)
	if err := h.Account.ChangePassword(ctx.UserContext(), id.AccountID, data.CurrentPassword, data.NewPassword); err != nil {
		return h.fail(ctx, "ChangePassword()", err)
	}

	account, err := h.Account.FindByID(ctx.UserContext(), id.AccountID)
	if err != nil {
		return h.fail(ctx, "ChangePassword()", err)
	}

	resp, err := h.authResponse(account, "Password changed successfully")
	if err != nil {
		return h.fail(ctx, "ChangePassword()", err)
	}

	h.Notifier.PasswordChanged(account.Email, account.Name)
	return ctx.JSON(resp)
}

func (h *Handler) RecoveryKey(ctx *fiber.Ctx) error {
	var data model.RecoveryKeyAPI

	if err := ctx.BodyParser(&data); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := data.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	id := identity(ctx)
	if _, err := h.Account.ValidateLogin(ctx.UserContext(), id.AccountName, data.Password); err != nil {
		return h.fail(ctx, "RecoveryKey()", err)
	}

	key, err := h.Account.GenerateRecoveryKey(ctx.UserContext(), id.AccountID)
	if err != nil {
		return h.fail(ctx, "RecoveryKey()", err)
	}

	return ctx.JSON(fiber.Map{
		"error":        false,
		"message":      "Write the recovery key down, it won't be shown again",
		"recovery_key": key,
	})
}

func (h *Handler) Recover(ctx *fiber.Ctx) error {
	var data model.RecoverAPI

	if err := ctx.BodyParser(&data); err != nil {
		return h.badRequest(ctx, msgBody)
	}

	if err := data.Validate(); err != nil {
		return h.invalid(ctx, err)
	}

	account, err := h.Account.RecoverPassword(ctx.UserContext(), data.Email, data.RecoveryKey, data.NewPassword)
	if err != nil {
		return h.fail(ctx, "Recover()", err)
	}

	resp, err := h.authResponse(account, "Password recovered successfully")
	if err != nil {
		return h.fail(ctx, "Recover()", err)
	}

	h.Logger.Info(fmt.Sprintf("Recover(): account %s recovered", account.Name))
	h.Notifier.PasswordChanged(account.Email, account.Name)

	return ctx.JSON(resp)
}
