package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pokeelite_backend/model"
)

const localsIdentity = "identity"

type identityKey struct{}

var (
	errMissingToken = fmt.Errorf("%w: missing bearer token", model.ErrUnauthorized)
	errStaleToken   = fmt.Errorf("%w: token predates a credential change", model.ErrUnauthorized)
	errGoneAccount  = fmt.Errorf("%w: account no longer exists", model.ErrUnauthorized)
)

// Middleware guards routes with the session token carried in the
// Authorization header.
type Middleware struct {
	Tokens   TokenServiceInterface
	Accounts AccountServiceInterface
	Logger   LoggerInterface
}

func NewMiddleware(tokens TokenServiceInterface, accounts AccountServiceInterface, logger LoggerInterface) *Middleware {
	return &Middleware{Tokens: tokens, Accounts: accounts, Logger: logger}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// authenticate resolves the request's token to a live account. The token must
// carry the account's current credential version.
func (m *Middleware) authenticate(ctx *fiber.Ctx) (*model.Identity, error) {
	token := bearerToken(ctx.Get(fiber.HeaderAuthorization))
	if token == "" {
		return nil, errMissingToken
	}

	identity, err := m.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := m.Accounts.FindByID(ctx.UserContext(), identity.AccountID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errGoneAccount
	}
	if err != nil {
		return nil, err
	}

	if account.CredentialVersion != identity.CredentialVersion {
		return nil, errStaleToken
	}
	return identity, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "missing"
	case errors.Is(err, errStaleToken):
		return "stale"
	case errors.Is(err, errGoneAccount):
		return "account"
	default:
		return "invalid"
	}
}

func (m *Middleware) EnsureAuthenticated(ctx *fiber.Ctx) error {
	identity, err := m.authenticate(ctx)
	if errors.Is(err, model.ErrUnauthorized) {
		tokensRejected.WithLabelValues(rejectReason(err)).Inc()
		return ctx.Status(fiber.StatusUnauthorized).JSON(model.BaseResponse{
			Error:   true,
			Message: "You must be logged in to access this resource",
		})
	}
	if err != nil {
		m.Logger.Exception(fmt.Sprintf("EnsureAuthenticated(): error resolving token: %v", err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(model.BaseResponse{
			Error:   true,
			Message: "Error checking for session",
		})
	}

	ctx.Locals(localsIdentity, identity)
	ctx.SetUserContext(context.WithValue(ctx.UserContext(), identityKey{}, identity))
	return ctx.Next()
}

// EnsureLoggedOut rejects requests that already carry a valid token. Expired
// or stale tokens count as logged out.
func (m *Middleware) EnsureLoggedOut(ctx *fiber.Ctx) error {
	if bearerToken(ctx.Get(fiber.HeaderAuthorization)) == "" {
		return ctx.Next()
	}

	_, err := m.authenticate(ctx)
	if err == nil {
		return ctx.Status(fiber.StatusForbidden).JSON(model.BaseResponse{
			Error:   true,
			Message: "You are already logged in",
		})
	}
	if !errors.Is(err, model.ErrUnauthorized) {
		m.Logger.Exception(fmt.Sprintf("EnsureLoggedOut(): error resolving token: %v", err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(model.BaseResponse{
			Error:   true,
			Message: "Error checking for session",
		})
	}
	return ctx.Next()
}

// IdentityFrom returns the identity EnsureAuthenticated attached to the
// request, or nil outside a guarded route.
func IdentityFrom(ctx *fiber.Ctx) *model.Identity {
	if identity, ok := ctx.Locals(localsIdentity).(*model.Identity); ok {
		return identity
	}
	return IdentityFromContext(ctx.UserContext())
}

func IdentityFromContext(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityKey{}).(*model.Identity)
	return identity
}
