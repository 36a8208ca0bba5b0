package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

// Recovery keys are 25 symbols from a 32 symbol alphabet without look-alike
// characters, shown to the player in groups of five.
const (
	recoveryAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	recoveryKeyLength = 25
	recoveryGroupSize = 5
)

type AccountOptions struct {
	PremiumDays  int
	TemplateName string
}

// AccountService is the identity registry: account uniqueness, credentials
// and recovery keys.
type AccountService struct {
	store   AccountStore
	hasher  *CredentialHasher
	options AccountOptions
	now     func() time.Time

	// verified against for unknown names so both login failures cost a hash
	dummyDigest string
}

func NewAccountService(store AccountStore, hasher *CredentialHasher, options AccountOptions) (*AccountService, error) {
	dummy, err := hasher.Hash("pokeelite-login-dummy")
	if err != nil {
		return nil, fmt.Errorf("error preparing login digest: %w", err)
	}

	return &AccountService{
		store:       store,
		hasher:      hasher,
		options:     options,
		now:         time.Now,
		dummyDigest: dummy,
	}, nil
}

func (a *AccountService) NameExists(ctx context.Context, name string) (bool, error) {
	return a.store.AccountNameExists(ctx, name)
}

func (a *AccountService) EmailExists(ctx context.Context, email string) (bool, error) {
	return a.store.EmailExists(ctx, email)
}

func (a *AccountService) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	return a.store.NicknameExists(ctx, nickname)
}

// checkIdentity is the fast-fail pre-check. It only improves the message; the
// unique keys still decide when two registrations race.
func (a *AccountService) checkIdentity(ctx context.Context, name, email, nickname string) error {
	checks := []struct {
		field  string
		exists func(context.Context, string) (bool, error)
		value  string
	}{
		{model.FieldName, a.store.AccountNameExists, name},
		{model.FieldEmail, a.store.EmailExists, email},
		{model.FieldNickname, a.store.NicknameExists, nickname},
	}

	for _, check := range checks {
		exists, err := check.exists(ctx, check.value)
		if err != nil {
			return err
		}
		if exists {
			return &model.DuplicateIdentityError{Field: check.field}
		}
	}
	return nil
}

func (a *AccountService) newAccount(name, password, email, nickname string) (*repository.AccountDB, error) {
	digest, err := a.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	return &repository.AccountDB{
		Name:        name,
		Password:    digest,
		Email:       email,
		Nickname:    nickname,
		PremiumDays: a.options.PremiumDays,
		CreatedAt:   a.now().Unix(),
	}, nil
}

func (a *AccountService) Create(ctx context.Context, name, password, email, nickname string) (*model.AccountAPI, error) {
	if err := a.checkIdentity(ctx, name, email, nickname); err != nil {
		return nil, err
	}

	data, err := a.newAccount(name, password, email, nickname)
	if err != nil {
		return nil, err
	}

	if err = a.store.CreateAccount(ctx, data); err != nil {
		return nil, err
	}
	return toAccountAPI(data), nil
}

// Register creates the account and, when requested, its first character in a
// single transaction. Either both exist afterwards or neither does.
func (a *AccountService) Register(ctx context.Context, data *model.RegisterAPI) (account *model.AccountAPI, character *model.CharacterAPI, err error) {
	defer func() { registrations.WithLabelValues(outcome(err)).Inc() }()

	if data.Character == nil {
		account, err = a.Create(ctx, data.Name, data.Password, data.Email, data.Nickname)
		return account, nil, err
	}

	if err = a.checkIdentity(ctx, data.Name, data.Email, data.Nickname); err != nil {
		return nil, nil, err
	}

	taken, err := a.store.CharacterNameExists(ctx, data.Character.Name)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, model.ErrNameTaken
	}

	accountData, err := a.newAccount(data.Name, data.Password, data.Email, data.Nickname)
	if err != nil {
		return nil, nil, err
	}

	characterData := &repository.CharacterDB{
		Name:      data.Character.Name,
		Sex:       data.Character.Sex,
		Vocation:  data.Character.Vocation,
		TownID:    data.Character.City,
		WorldID:   data.Character.World,
		CreatedAt: accountData.CreatedAt,
	}

	if err = a.store.CreateAccountWithCharacter(ctx, accountData, characterData, a.options.TemplateName); err != nil {
		return nil, nil, err
	}

	created := toCharacterAPI(characterData)
	return toAccountAPI(accountData), &created, nil
}

// FindByName returns model.ErrNotFound when the account does not exist.
func (a *AccountService) FindByName(ctx context.Context, name string) (*model.AccountAPI, error) {
	data, err := a.store.FindAccountByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, model.ErrNotFound
	}
	return toAccountAPI(data), nil
}

func (a *AccountService) FindByID(ctx context.Context, id int64) (*model.AccountAPI, error) {
	data, err := a.store.FindAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, model.ErrNotFound
	}
	return toAccountAPI(data), nil
}

// ValidateLogin answers model.ErrInvalidCredentials both for an unknown name
// and for a wrong password.
func (a *AccountService) ValidateLogin(ctx context.Context, name, password string) (account *model.AccountAPI, err error) {
	defer func() { logins.WithLabelValues(outcome(err)).Inc() }()

	data, err := a.store.FindAccountByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if data == nil {
		a.hasher.Verify(password, a.dummyDigest)
		return nil, model.ErrInvalidCredentials
	}

	if !a.hasher.Verify(password, data.Password) {
		return nil, model.ErrInvalidCredentials
	}
	return toAccountAPI(data), nil
}

// UpdatePassword rehashes and stores the password. Tokens issued before the
// change stop being accepted.
func (a *AccountService) UpdatePassword(ctx context.Context, accountID int64, newPassword string) error {
	digest, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return a.store.UpdatePassword(ctx, accountID, digest)
}

func (a *AccountService) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error {
	if err := a.verifyPassword(ctx, accountID, currentPassword); err != nil {
		return err
	}
	return a.UpdatePassword(ctx, accountID, newPassword)
}

func (a *AccountService) verifyPassword(ctx context.Context, accountID int64, password string) error {
	data, err := a.store.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if data == nil {
		return model.ErrNotFound
	}
	if !a.hasher.Verify(password, data.Password) {
		return model.ErrInvalidCredentials
	}
	return nil
}

// GenerateRecoveryKey replaces the account's recovery key. The plaintext is
// returned once; only its digest is stored.
func (a *AccountService) GenerateRecoveryKey(ctx context.Context, accountID int64) (string, error) {
	key, err := newRecoveryKey()
	if err != nil {
		return "", err
	}

	digest, err := a.hasher.Hash(normalizeRecoveryKey(key))
	if err != nil {
		return "", fmt.Errorf("error hashing recovery key: %w", err)
	}

	if err = a.store.SetRecoveryKey(ctx, accountID, digest); err != nil {
		return "", err
	}
	return key, nil
}

// ValidateRecoveryKey returns the id of the account owning email when key
// matches its recovery key.
func (a *AccountService) ValidateRecoveryKey(ctx context.Context, email, key string) (int64, error) {
	data, err := a.store.FindAccountByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	if data == nil || !data.RecoveryKey.Valid || data.RecoveryKey.String == "" {
		a.hasher.Verify(key, a.dummyDigest)
		return 0, model.ErrInvalidCredentials
	}

	if !a.hasher.Verify(normalizeRecoveryKey(key), data.RecoveryKey.String) {
		return 0, model.ErrInvalidCredentials
	}
	return data.ID, nil
}

// RecoverPassword sets a new password for the account that proves ownership
// with its recovery key. The key is used up.
func (a *AccountService) RecoverPassword(ctx context.Context, email, key, newPassword string) (*model.AccountAPI, error) {
	accountID, err := a.ValidateRecoveryKey(ctx, email, key)
	if err != nil {
		return nil, err
	}

	digest, err := a.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if err = a.store.RecoverPassword(ctx, accountID, digest); err != nil {
		return nil, err
	}
	return a.FindByID(ctx, accountID)
}

func newRecoveryKey() (string, error) {
	raw := make([]byte, recoveryKeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("error generating recovery key: %w", err)
	}

	var sb strings.Builder
	for i, b := range raw {
		if i > 0 && i%recoveryGroupSize == 0 {
			sb.WriteByte('-')
		}
		// 256 is a multiple of 32, so the symbols stay uniform
		sb.WriteByte(recoveryAlphabet[int(b)%len(recoveryAlphabet)])
	}
	return sb.String(), nil
}

// normalizeRecoveryKey accepts keys typed in lower case or without dashes.
func normalizeRecoveryKey(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	return strings.ReplaceAll(key, "-", "")
}
