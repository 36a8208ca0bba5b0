package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokeelite_backend/model"
)

func TestCharacterCreate(t *testing.T) {
	repo := testRepository(t)
	accounts := testAccountService(t, repo)
	characters := testCharacterService(repo, 2)
	ctx := context.Background()

	account, err := accounts.Create(ctx, "trainer01", "secret1", "t1@x.io", "Trainer1")
	require.NoError(t, err)

	created, err := characters.Create(ctx, account.ID, &model.CreateCharacterAPI{Name: "Misty", Sex: 1, Vocation: 3, City: 2, World: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Sex)
	assert.Equal(t, 3, created.Vocation)
	assert.Equal(t, 2, created.TownID)
	assert.Equal(t, 1, created.WorldID)
	assert.False(t, created.Online)

	template, err := characters.FindByName(ctx, testTemplate)
	require.NoError(t, err)
	assert.Equal(t, template.Level, created.Level)
	assert.Equal(t, template.Experience, created.Experience)
	assert.Equal(t, template.PosZ, created.PosZ)

	templateSkills, err := characters.Skills(ctx, template.ID)
	require.NoError(t, err)
	skills, err := characters.Skills(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, templateSkills, skills)
	assert.Equal(t, "fist", skills[0].Name)

	found, err := characters.FindByName(ctx, "Misty")
	require.NoError(t, err)
	assert.Equal(t, "Trainer1", found.AccountNickname)

	_, err = characters.Create(ctx, account.ID, &model.CreateCharacterAPI{Name: "misty"})
	assert.ErrorIs(t, err, model.ErrNameTaken)

	_, err = characters.Create(ctx, account.ID, &model.CreateCharacterAPI{Name: "Brock"})
	require.NoError(t, err)

	_, err = characters.Create(ctx, account.ID, &model.CreateCharacterAPI{Name: "Gary"})
	assert.ErrorIs(t, err, model.ErrCharacterLimitReached)

	count, err := characters.CountByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := characters.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Brock", list[0].Name)
}

func TestCharacterTemplateMissing(t *testing.T) {
	repo := testRepository(t)
	accounts := testAccountService(t, repo)
	ctx := context.Background()

	account, err := accounts.Create(ctx, "trainer01", "secret1", "t1@x.io", "Trainer1")
	require.NoError(t, err)

	characters := NewCharacterService(repo, CharacterOptions{MaxPerAccount: 10, TemplateName: "Missing Template"})
	_, err = characters.Create(ctx, account.ID, &model.CreateCharacterAPI{Name: "Ash01"})
	assert.ErrorIs(t, err, model.ErrTemplateMissing)

	exists, err := characters.NameExists(ctx, "Ash01")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCharacterOwnership(t *testing.T) {
	repo := testRepository(t)
	accounts := testAccountService(t, repo)
	characters := testCharacterService(repo, 10)
	ctx := context.Background()

	owner, err := accounts.Create(ctx, "trainer01", "secret1", "t1@x.io", "Trainer1")
	require.NoError(t, err)
	other, err := accounts.Create(ctx, "trainer02", "secret1", "t2@x.io", "Trainer2")
	require.NoError(t, err)

	created, err := characters.Create(ctx, owner.ID, &model.CreateCharacterAPI{Name: "Ash01"})
	require.NoError(t, err)

	belongs, err := characters.BelongsToAccount(ctx, created.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, belongs)

	deleted, err := characters.Delete(ctx, created.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = characters.Delete(ctx, created.ID+100, owner.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "missing and foreign characters look the same")

	require.NoError(t, characters.UpdateComment(ctx, created.ID, "hello", true))
	found, err := characters.FindByName(ctx, "Ash01")
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Comment)
	assert.True(t, found.HideChar)

	deleted, err = characters.Delete(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = characters.FindByName(ctx, "Ash01")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCharacterListOnline(t *testing.T) {
	repo := testRepository(t)
	accounts := testAccountService(t, repo)
	characters := testCharacterService(repo, 10)
	ctx := context.Background()

	account, err := accounts.Create(ctx, "trainer01", "secret1", "t1@x.io", "Trainer1")
	require.NoError(t, err)
	created, err := characters.Create(ctx, account.ID, &model.CreateCharacterAPI{Name: "Ash01"})
	require.NoError(t, err)

	online, err := characters.ListOnline(ctx)
	require.NoError(t, err)
	assert.Empty(t, online)

	_, err = repo.DB.Exec("UPDATE players SET online = 1 WHERE id = ?", created.ID)
	require.NoError(t, err)

	online, err = characters.ListOnline(ctx)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.True(t, online[0].Online)
}
