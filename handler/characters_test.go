package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokeelite_backend/model"
)

func TestCreateCharacter(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	tests := []struct {
		name           string
		data           model.CreateCharacterAPI
		expectedStatus int
		expectedMsg    string
	}{
		{"Second character", model.CreateCharacterAPI{Name: "Misty Two", Vocation: 2, City: 1}, http.StatusCreated, "Character created successfully"},
		{"Name taken", model.CreateCharacterAPI{Name: testCharName, Vocation: 2, City: 1}, http.StatusBadRequest, "Character name already exists."},
		{"Name taken in other case", model.CreateCharacterAPI{Name: "misty two", Vocation: 2, City: 1}, http.StatusBadRequest, "Character name already exists."},
		{"Double space", model.CreateCharacterAPI{Name: "Brock  One", City: 1}, http.StatusBadRequest, "Character name must have 4 to 32 letters or digits, separated by single spaces."},
		{"Third character", model.CreateCharacterAPI{Name: "Brock03", Vocation: 3, City: 1}, http.StatusCreated, "Character created successfully"},
		{"Limit reached", model.CreateCharacterAPI{Name: "Gary04", Vocation: 1, City: 1}, http.StatusBadRequest, "You have reached the maximum number of characters per account."},
	}

	// cases run in order, each one sees the characters created before it
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testSendRequest(t, env.app, http.MethodPost, "/api/characters/", registered.Token, tt.data)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body model.BaseResponse
			decode(t, resp, &body)
			assert.Equal(t, tt.expectedMsg, body.Message)
		})
	}

	resp := testSendRequest(t, env.app, http.MethodGet, "/api/characters/my", registered.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mine struct {
		Characters []model.CharacterAPI `json:"characters"`
	}
	decode(t, resp, &mine)
	assert.Len(t, mine.Characters, 3)
}

func TestCreateCharacterNeedsLogin(t *testing.T) {
	env := testServer(t)

	resp := testSendRequest(t, env.app, http.MethodPost, "/api/characters/", "", model.CreateCharacterAPI{Name: "Nobody01"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body model.BaseResponse
	decode(t, resp, &body)
	assert.Equal(t, model.BaseResponse{Error: true, Message: "You must be logged in to access this resource"}, body)
}

func TestGetCharacter(t *testing.T) {
	env := testServer(t)
	registered := registerAccount(t, env)

	resp := testSendRequest(t, env.app, http.MethodGet, "/api/characters/"+testCharName, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Character model.CharacterAPI `json:"character"`
		Skills    []model.SkillAPI   `json:"skills"`
	}
	decode(t, resp, &body)
	assert.Equal(t, testCharName, body.Character.Name)
	assert.Equal(t, testNickname, body.Character.AccountNickname)
	assert.Len(t, body.Skills, 7)
	assert.Zero(t, body.Character.AccountID, "owner account id is never exposed")

	resp = testSendRequest(t, env.app, http.MethodPut, fmt.Sprintf("/api/characters/%d/comment", registered.Character.ID), registered.Token, model.UpdateCommentAPI{
		Comment:  "Gotta catch them all",
		HideChar: true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/characters/"+testCharName, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hidden struct {
		Character map[string]interface{} `json:"character"`
	}
	decode(t, resp, &hidden)
	assert.Equal(t, "Gotta catch them all", hidden.Character["comment"])
	assert.NotContains(t, hidden.Character, "account_nickname", "hidden characters don't show their owner")
	assert.NotContains(t, hidden.Character, "account_id")

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/characters/Missingno", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCharacterOwnership(t *testing.T) {
	env := testServer(t)
	owner := registerAccount(t, env)
	other := registerOther(t, env, "trainer02", "t2@x.io", "Trainer2", "Gary02")

	target := fmt.Sprintf("/api/characters/%d", owner.Character.ID)

	resp := testSendRequest(t, env.app, http.MethodPut, target+"/comment", other.Token, model.UpdateCommentAPI{Comment: "mine now"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodDelete, target, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body model.BaseResponse
	decode(t, resp, &body)
	assert.Equal(t, model.BaseResponse{Error: true, Message: "Character not found or not owned by you."}, body)

	resp = testSendRequest(t, env.app, http.MethodDelete, "/api/characters/abc", other.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodDelete, target, owner.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testSendRequest(t, env.app, http.MethodGet, "/api/characters/"+testCharName, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOnlineCharacters(t *testing.T) {
	env := testServer(t)
	registerAccount(t, env)

	resp := testSendRequest(t, env.app, http.MethodGet, "/api/characters/online", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Players []model.CharacterAPI `json:"players"`
		Count   int                  `json:"count"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 0, body.Count)
	assert.Empty(t, body.Players)
}
