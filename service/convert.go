package service

import (
	"time"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

func toAccountAPI(data *repository.AccountDB) *model.AccountAPI {
	return &model.AccountAPI{
		ID:                data.ID,
		Name:              data.Name,
		Email:             data.Email,
		Nickname:          data.Nickname,
		PremiumDays:       data.PremiumDays,
		CreatedAt:         time.Unix(data.CreatedAt, 0).UTC(),
		CredentialVersion: data.CredentialVersion,
	}
}

func toCharacterAPI(data *repository.CharacterDB) model.CharacterAPI {
	return model.CharacterAPI{
		ID:         data.ID,
		AccountID:  data.AccountID,
		Name:       data.Name,
		WorldID:    data.WorldID,
		Sex:        data.Sex,
		Vocation:   data.Vocation,
		Level:      data.Level,
		Experience: data.Experience,
		Health:     data.Health,
		HealthMax:  data.HealthMax,
		Mana:       data.Mana,
		ManaMax:    data.ManaMax,
		MagicLevel: data.MagicLevel,
		ManaSpent:  data.ManaSpent,
		Soul:       data.Soul,
		TownID:     data.TownID,
		PosX:       data.PosX,
		PosY:       data.PosY,
		PosZ:       data.PosZ,
		Capacity:   data.Capacity,
		Online:     data.Online == 1,
		Comment:    data.Comment,
		HideChar:   data.HideChar == 1,
		CreatedAt:  time.Unix(data.CreatedAt, 0).UTC(),
	}
}

func toCharacterList(rows []repository.CharacterDB) []model.CharacterAPI {
	list := make([]model.CharacterAPI, 0, len(rows))
	for i := range rows {
		list = append(list, toCharacterAPI(&rows[i]))
	}
	return list
}

func toSkillList(rows []repository.SkillDB) []model.SkillAPI {
	list := make([]model.SkillAPI, 0, len(rows))
	for _, row := range rows {
		list = append(list, model.SkillAPI{
			SkillID: row.SkillID,
			Name:    model.SkillName(row.SkillID),
			Value:   row.Value,
			Count:   row.Count,
		})
	}
	return list
}

func toNewsAPI(data *repository.NewsDB) model.NewsAPI {
	return model.NewsAPI{
		ID:     data.ID,
		Title:  data.Title,
		Body:   data.Body,
		Author: data.Author,
		Date:   time.Unix(data.Date, 0).UTC(),
	}
}

func toCommentAPI(data *repository.CommentDB) model.CommentAPI {
	return model.CommentAPI{
		ID:     data.ID,
		NewsID: data.NewsID,
		Author: data.Author,
		Body:   data.Body,
		Date:   time.Unix(data.Date, 0).UTC(),
	}
}
