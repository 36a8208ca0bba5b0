package service

import (
	"context"
	"time"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

type CharacterOptions struct {
	MaxPerAccount int
	TemplateName  string
}

// CharacterService provisions characters from the template character and
// answers ownership questions about them.
type CharacterService struct {
	store   CharacterStore
	options CharacterOptions
	now     func() time.Time
}

func NewCharacterService(store CharacterStore, options CharacterOptions) *CharacterService {
	return &CharacterService{store: store, options: options, now: time.Now}
}

// Create clones the template character for accountID. The limit and name
// checks here are repeated by storage inside the provisioning transaction.
func (c *CharacterService) Create(ctx context.Context, accountID int64, data *model.CreateCharacterAPI) (character *model.CharacterAPI, err error) {
	defer func() { charactersProvisioned.WithLabelValues(outcome(err)).Inc() }()

	if c.options.MaxPerAccount > 0 {
		count, err := c.store.CountCharacters(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if count >= c.options.MaxPerAccount {
			return nil, model.ErrCharacterLimitReached
		}
	}

	taken, err := c.store.CharacterNameExists(ctx, data.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrNameTaken
	}

	dto := &repository.CharacterDB{
		AccountID: accountID,
		Name:      data.Name,
		Sex:       data.Sex,
		Vocation:  data.Vocation,
		TownID:    data.City,
		WorldID:   data.World,
		CreatedAt: c.now().Unix(),
	}

	if err = c.store.CreateCharacter(ctx, dto, c.options.TemplateName, c.options.MaxPerAccount); err != nil {
		return nil, err
	}

	created := toCharacterAPI(dto)
	return &created, nil
}

func (c *CharacterService) NameExists(ctx context.Context, name string) (bool, error) {
	return c.store.CharacterNameExists(ctx, name)
}

// FindByName returns model.ErrNotFound for unknown names. The owner is only
// exposed through the nickname.
func (c *CharacterService) FindByName(ctx context.Context, name string) (*model.CharacterAPI, error) {
	data, err := c.store.FindCharacterByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, model.ErrNotFound
	}

	character := toCharacterAPI(&data.CharacterDB)
	character.AccountNickname = data.AccountNickname
	return &character, nil
}

func (c *CharacterService) ListByAccount(ctx context.Context, accountID int64) ([]model.CharacterAPI, error) {
	rows, err := c.store.ListCharactersByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toCharacterList(rows), nil
}

func (c *CharacterService) CountByAccount(ctx context.Context, accountID int64) (int, error) {
	return c.store.CountCharacters(ctx, accountID)
}

// Delete reports false both when the character does not exist and when
// accountID does not own it.
func (c *CharacterService) Delete(ctx context.Context, characterID, accountID int64) (bool, error) {
	return c.store.DeleteCharacter(ctx, characterID, accountID)
}

func (c *CharacterService) UpdateComment(ctx context.Context, characterID int64, comment string, hide bool) error {
	return c.store.UpdateComment(ctx, characterID, comment, hide)
}

func (c *CharacterService) ListOnline(ctx context.Context) ([]model.CharacterAPI, error) {
	rows, err := c.store.ListOnline(ctx)
	if err != nil {
		return nil, err
	}
	return toCharacterList(rows), nil
}

func (c *CharacterService) BelongsToAccount(ctx context.Context, characterID, accountID int64) (bool, error) {
	return c.store.CharacterBelongsTo(ctx, characterID, accountID)
}

func (c *CharacterService) Skills(ctx context.Context, characterID int64) ([]model.SkillAPI, error) {
	rows, err := c.store.CharacterSkills(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return toSkillList(rows), nil
}
