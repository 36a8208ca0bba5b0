package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/model"
	"pokeelite_backend/service"
)

const (
	msgInternal = "An internal error occurred."
	msgBody     = "The request body is invalid."
)

// Pinger reports whether storage answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Account   service.AccountServiceInterface
	Char      service.CharacterServiceInterface
	Token     service.TokenServiceInterface
	News      service.NewsServiceInterface
	Highscore service.HighscoreServiceInterface
	Logger    service.LoggerInterface
	Notifier  *service.Notifier
	DB        Pinger
}

func New(accountService service.AccountServiceInterface, charService service.CharacterServiceInterface, tokenService service.TokenServiceInterface, newsService service.NewsServiceInterface, highscoreService service.HighscoreServiceInterface, logService service.LoggerInterface, notifier *service.Notifier, db Pinger) *Handler {
	return &Handler{
		Account:   accountService,
		Char:      charService,
		Token:     tokenService,
		News:      newsService,
		Highscore: highscoreService,
		Logger:    logService,
		Notifier:  notifier,
		DB:        db,
	}
}

// errorStatus maps domain errors to the status and message the client sees.
// Anything unrecognised is an internal error.
func errorStatus(err error) (int, string) {
	var dup *model.DuplicateIdentityError
	switch {
	case errors.As(err, &dup), errors.Is(err, model.ErrDuplicateIdentity):
		return http.StatusBadRequest, model.DuplicateMsg(err)
	case errors.Is(err, model.ErrNameTaken):
		return http.StatusBadRequest, "Character name already exists."
	case errors.Is(err, model.ErrCharacterLimitReached):
		return http.StatusBadRequest, "You have reached the maximum number of characters per account."
	case errors.Is(err, model.ErrInvalidCategory):
		return http.StatusBadRequest, "Invalid highscore category."
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, "You must be logged in to access this resource"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "Not your character."
	case errors.Is(err, model.ErrNotFoundOrNotOwned):
		return http.StatusNotFound, "Character not found or not owned by you."
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// fail answers err to the client. Internal errors are logged with their
// full chain and answered generically.
func (h *Handler) fail(ctx *fiber.Ctx, fn string, err error) error {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Exception(fmt.Sprintf("%s: %v", fn, err))
	}
	return ctx.Status(status).JSON(model.BaseResponse{Error: true, Message: msg})
}

func (h *Handler) badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(http.StatusBadRequest).JSON(model.BaseResponse{Error: true, Message: msg})
}

func (h *Handler) invalid(ctx *fiber.Ctx, err error) error {
	return h.badRequest(ctx, model.ErrorMsg(err.Error()))
}

func paramID(ctx *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// identity is only called behind EnsureAuthenticated.
func identity(ctx *fiber.Ctx) *model.Identity {
	return service.IdentityFrom(ctx)
}

func (h *Handler) Health(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(pingCtx); err != nil {
		h.Logger.Exception(fmt.Sprintf("Health(): database ping failed: %v", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"status":   "error",
			"database": "unreachable",
		})
	}

	return ctx.JSON(fiber.Map{
		"status":    "ok",
		"database":  "ok",
		"timestamp": time.Now().UTC(),
	})
}
