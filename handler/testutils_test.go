package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
	"pokeelite_backend/service"
)

const (
	testTemplate = "Pokemon Trainer Sample"
	testName     = "trainer01"
	testPassword = "secret1"
	testEmail    = "t1@x.io"
	testNickname = "Trainer1"
	testCharName = "Ash01"
)

type testEnv struct {
	app    *fiber.App
	repo   *repository.Repository
	tokens *service.TokenService
	log    *service.MockLoggerService
	email  *service.MockEmailService
}

func testServer(t *testing.T) *testEnv {
	t.Helper()

	repo, err := repository.New(context.Background(), repository.DriverSQLite, ":memory:")
	require.NoError(t, err, "Error creating test repository")
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Bootstrap(context.Background(), testTemplate))

	log := new(service.MockLoggerService)
	log.On("Info", mock.AnythingOfType("string")).Maybe()
	log.On("Exception", mock.AnythingOfType("string")).Maybe()
	log.On("Warning", mock.AnythingOfType("string")).Maybe()

	email := new(service.MockEmailService)
	email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	accounts, err := service.NewAccountService(repo, service.NewCredentialHasher(bcrypt.MinCost), service.AccountOptions{
		TemplateName: testTemplate,
	})
	require.NoError(t, err)

	tokens := service.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour, "pokeelite-test")
	characters := service.NewCharacterService(repo, service.CharacterOptions{MaxPerAccount: 3, TemplateName: testTemplate})
	notifier := service.NewNotifier(email, log, "PokeElite")

	h := New(accounts, characters, tokens, service.NewNewsService(repo), service.NewHighscoreService(repo, testTemplate), log, notifier, repo)

	app := fiber.New()
	SetupRoutes(app, service.NewMiddleware(tokens, accounts, log), h)

	return &testEnv{app: app, repo: repo, tokens: tokens, log: log, email: email}
}

func testSendRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var bodyBytes []byte
	if body != nil {
		var err error
		if raw, ok := body.(string); ok {
			bodyBytes = []byte(raw)
		} else if bodyBytes, err = json.Marshal(body); err != nil {
			t.Fatalf("Error marshalling test body %v: %v", body, err)
		}
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Error sending test request for %s: %v", target, err)
	}

	return resp
}

func decode(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, into), "body: %s", raw)
}

func testRegisterData() *model.RegisterAPI {
	return &model.RegisterAPI{
		Name:     testName,
		Password: testPassword,
		Email:    testEmail,
		Nickname: testNickname,
		Character: &model.CreateCharacterAPI{
			Name:     testCharName,
			Vocation: 1,
			City:     1,
			World:    0,
		},
	}
}

// registerAccount registers the default account and returns its token.
func registerAccount(t *testing.T, env *testEnv) model.AuthResponse {
	t.Helper()

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/register", "", testRegisterData())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body model.AuthResponse
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body
}

func registerOther(t *testing.T, env *testEnv, name, email, nickname, character string) model.AuthResponse {
	t.Helper()

	data := testRegisterData()
	data.Name, data.Email, data.Nickname, data.Character.Name = name, email, nickname, character

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/register", "", data)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body model.AuthResponse
	decode(t, resp, &body)
	return body
}
