package service

import (
	"context"
	"math"
	"strings"
	"time"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

const (
	DefaultNewsLimit = 10
	maxNewsLimit     = 50
)

type NewsService struct {
	store NewsStore
	now   func() time.Time
}

func NewNewsService(store NewsStore) *NewsService {
	return &NewsService{store: store, now: time.Now}
}

// List returns one page of news, newest first. page starts at 1.
func (n *NewsService) List(ctx context.Context, page, limit int) (*model.NewsPageAPI, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultNewsLimit
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}
	// keeps the offset inside what every backend accepts
	if page > math.MaxInt32/limit {
		page = math.MaxInt32 / limit
	}

	rows, err := n.store.ListNews(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := n.store.CountNews(ctx)
	if err != nil {
		return nil, err
	}

	news := make([]model.NewsAPI, 0, len(rows))
	for i := range rows {
		news = append(news, toNewsAPI(&rows[i]))
	}

	return &model.NewsPageAPI{
		News: news,
		Pagination: model.PaginationAPI{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (n *NewsService) Get(ctx context.Context, id int64) (*model.NewsAPI, []model.CommentAPI, error) {
	data, err := n.store.FindNews(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if data == nil {
		return nil, nil, model.ErrNotFound
	}

	rows, err := n.store.ListComments(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	comments := make([]model.CommentAPI, 0, len(rows))
	for i := range rows {
		comments = append(comments, toCommentAPI(&rows[i]))
	}

	news := toNewsAPI(data)
	return &news, comments, nil
}

// AddComment posts under one of the caller's characters. A character the
// account does not own is model.ErrForbidden.
func (n *NewsService) AddComment(ctx context.Context, newsID, accountID int64, data *model.AddCommentAPI) (*model.CommentAPI, error) {
	news, err := n.store.FindNews(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, model.ErrNotFound
	}

	character, err := n.store.FindCharacterByName(ctx, data.CharacterName)
	if err != nil {
		return nil, err
	}
	if character == nil || character.AccountID != accountID {
		return nil, model.ErrForbidden
	}

	comment := &repository.CommentDB{
		NewsID: newsID,
		Author: character.Name,
		Body:   strings.TrimSpace(data.Body),
		Date:   n.now().Unix(),
	}
	if err = n.store.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	created := toCommentAPI(comment)
	return &created, nil
}
