package service

import (
	"context"

	"pokeelite_backend/model"
)

const (
	DefaultHighscoreLimit = 100
	maxHighscoreLimit     = 100
)

type HighscoreService struct {
	store        HighscoreStore
	templateName string
}

func NewHighscoreService(store HighscoreStore, templateName string) *HighscoreService {
	return &HighscoreService{store: store, templateName: templateName}
}

func (h *HighscoreService) Get(ctx context.Context, category string, limit int) ([]model.HighscoreAPI, error) {
	if !model.ValidCategory(category) {
		return nil, model.ErrInvalidCategory
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxHighscoreLimit {
		limit = maxHighscoreLimit
	}

	rows, err := h.store.Highscores(ctx, category, limit, h.templateName)
	if err != nil {
		return nil, err
	}

	list := make([]model.HighscoreAPI, 0, len(rows))
	for i, row := range rows {
		list = append(list, model.HighscoreAPI{
			Rank:     i + 1,
			Name:     row.Name,
			Level:    row.Level,
			Vocation: row.Vocation,
			WorldID:  row.WorldID,
			Value:    row.Value,
		})
	}
	return list, nil
}
