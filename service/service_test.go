package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

const (
	testTemplate   = "Pokemon Trainer Sample"
	testSigningKey = "0123456789abcdef0123456789abcdef"
	testIssuer     = "pokeelite-test"
)

func testRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(context.Background(), repository.DriverSQLite, ":memory:")
	require.NoError(t, err, "Error creating test repository")
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.Bootstrap(context.Background(), testTemplate))
	return repo
}

func testAccountService(t *testing.T, repo *repository.Repository) *AccountService {
	t.Helper()

	accounts, err := NewAccountService(repo, NewCredentialHasher(bcrypt.MinCost), AccountOptions{
		PremiumDays:  3,
		TemplateName: testTemplate,
	})
	require.NoError(t, err)
	return accounts
}

func testCharacterService(repo *repository.Repository, limit int) *CharacterService {
	return NewCharacterService(repo, CharacterOptions{MaxPerAccount: limit, TemplateName: testTemplate})
}

func testRegister() *model.RegisterAPI {
	return &model.RegisterAPI{
		Name:     "trainer01",
		Password: "secret1",
		Email:    "t1@x.io",
		Nickname: "Trainer1",
		Character: &model.CreateCharacterAPI{
			Name:     "Ash01",
			Vocation: 1,
			City:     1,
			World:    0,
		},
	}
}
