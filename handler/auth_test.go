package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokeelite_backend/model"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(r *model.RegisterAPI)
		expectedStatus int
		expectedBody   *model.BaseResponse
	}{
		{
			"Visitor registers new account",
			func(r *model.RegisterAPI) {},
			http.StatusCreated,
			nil,
		},
		{
			"Invalid account name",
			func(r *model.RegisterAPI) { r.Name = "ab" },
			http.StatusBadRequest,
			&model.BaseResponse{Error: true, Message: "Account name must have 4 to 32 letters, digits or underscores."},
		},
		{
			"Empty fields",
			func(r *model.RegisterAPI) { r.Password = "" },
			http.StatusBadRequest,
			&model.BaseResponse{Error: true, Message: "All fields must be filled in."},
		},
		{
			"Invalid character sex",
			func(r *model.RegisterAPI) { r.Character.Sex = 5 },
			http.StatusBadRequest,
			&model.BaseResponse{Error: true, Message: "Sex must be 0 or 1."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testServer(t)

			data := testRegisterData()
			tt.mutate(data)
			resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/register", "", data)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode, "Unexpected response HTTP status code for test: %s", tt.name)

			if tt.expectedBody != nil {
				var respBody model.BaseResponse
				decode(t, resp, &respBody)
				assert.Equal(t, tt.expectedBody, &respBody, "Unexpected response body for test: %s", tt.name)
			}
		})
	}
}

func TestRegisterCopiesTemplate(t *testing.T) {
	env := testServer(t)

	body := registerAccount(t, env)
	require.NotNil(t, body.Account)
	require.NotNil(t, body.Character)
	assert.False(t, body.Error)
	assert.Equal(t, testName, body.Account.Name)
	assert.Equal(t, testCharName, body.Character.Name)

	resp := testSendRequest(t, env.app, http.MethodGet, "/api/characters/"+strings.ReplaceAll(testTemplate, " ", "%20"), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var template struct {
		Character model.CharacterAPI `json:"character"`
	}
	decode(t, resp, &template)

	assert.Equal(t, template.Character.Level, body.Character.Level)
	assert.Equal(t, template.Character.Health, body.Character.Health)
	assert.Equal(t, template.Character.Mana, body.Character.Mana)
	assert.Equal(t, template.Character.Capacity, body.Character.Capacity)
	assert.Equal(t, 1, body.Character.Vocation)
	assert.Equal(t, 1, body.Character.TownID)

	identity, err := env.tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, body.Account.ID, identity.AccountID)

	env.email.AssertExpectations(t)
}

func TestRegisterDuplicate(t *testing.T) {
	env := testServer(t)
	registerAccount(t, env)

	tests := []struct {
		name    string
		mutate  func(r *model.RegisterAPI)
		message string
	}{
		{"same account name", func(r *model.RegisterAPI) {}, "Account name already exists."},
		{"same email", func(r *model.RegisterAPI) { r.Name = "trainer02" }, "Email already in use."},
		{"same nickname", func(r *model.RegisterAPI) { r.Name, r.Email = "trainer02", "t2@x.io" }, "Nickname already exists."},
		{"same character", func(r *model.RegisterAPI) { r.Name, r.Email, r.Nickname = "trainer02", "t2@x.io", "Trainer2" }, "Character name already exists."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testRegisterData()
			tt.mutate(data)

			resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/register", "", data)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body model.BaseResponse
			decode(t, resp, &body)
			assert.Equal(t, model.BaseResponse{Error: true, Message: tt.message}, body)
		})
	}
}

func TestLogin(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	tests := []struct {
		name           string
		data           model.LoginAPI
		expectedStatus int
	}{
		{"Correct credentials", model.LoginAPI{Name: testName, Password: testPassword}, http.StatusOK},
		{"Wrong password", model.LoginAPI{Name: testName, Password: "wrong1"}, http.StatusUnauthorized},
		{"Unknown account", model.LoginAPI{Name: "nobody01", Password: testPassword}, http.StatusUnauthorized},
		{"Empty fields", model.LoginAPI{Name: testName}, http.StatusBadRequest},
	}

	var failures []model.BaseResponse
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/login", "", tt.data)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body model.AuthResponse
			decode(t, resp, &body)
			if tt.expectedStatus == http.StatusOK {
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, registered.Account.ID, body.Account.ID)
			} else if tt.expectedStatus == http.StatusUnauthorized {
				failures = append(failures, body.BaseResponse)
			}
		})
	}

	require.Len(t, failures, 2)
	assert.Equal(t, failures[0], failures[1], "unknown name and wrong password look the same")
}

func TestLoginWhileLoggedIn(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/login", registered.Token, model.LoginAPI{Name: testName, Password: testPassword})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMe(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	resp := testSendRequest(t, env.app, http.MethodGet, "/api/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]map[string]interface{}
	decode(t, resp, &raw)
	assert.Equal(t, testName, raw["account"]["name"])
	assert.NotContains(t, raw["account"], "password")
	assert.NotContains(t, raw["account"], "recovery_key")

	tampered := registered.Token[:len(registered.Token)-4] + "AAAA"
	resp = testSendRequest(t, env.app, http.MethodGet, "/api/auth/me", tampered, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/change-password", registered.Token, model.ChangePasswordAPI{
		CurrentPassword: "wrong1",
		NewPassword:     "secret2",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodPost, "/api/auth/change-password", registered.Token, model.ChangePasswordAPI{
		CurrentPassword: testPassword,
		NewPassword:     "secret2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var changed model.AuthResponse
	decode(t, resp, &changed)
	require.NotEmpty(t, changed.Token)

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "tokens issued before the change are rejected")

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/auth/me", changed.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodPost, "/api/auth/login", "", model.LoginAPI{Name: testName, Password: "secret2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecoveryFlow(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/recovery-key", registered.Token, model.RecoveryKeyAPI{Password: "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodPost, "/api/auth/recovery-key", registered.Token, model.RecoveryKeyAPI{Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var keyBody struct {
		RecoveryKey string `json:"recovery_key"`
	}
	decode(t, resp, &keyBody)
	require.NotEmpty(t, keyBody.RecoveryKey)

	resp = testSendRequest(t, env.app, http.MethodPost, "/api/auth/recover", "", model.RecoverAPI{
		Email:       testEmail,
		RecoveryKey: "AAAAA-AAAAA-AAAAA-AAAAA-AAAAA",
		NewPassword: "secret3",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodPost, "/api/auth/recover", "", model.RecoverAPI{
		Email:       testEmail,
		RecoveryKey: keyBody.RecoveryKey,
		NewPassword: "secret3",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recovered model.AuthResponse
	decode(t, resp, &recovered)
	assert.NotEmpty(t, recovered.Token)

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodPost, "/api/auth/login", "", model.LoginAPI{Name: testName, Password: "secret3"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedBody(t *testing.T) {
	env := testServer(t)

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/auth/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body model.BaseResponse
	decode(t, resp, &body)
	assert.Equal(t, model.BaseResponse{Error: true, Message: msgBody}, body)
}
