package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

func TestNewsList(t *testing.T) {
	repo := testRepository(t)
	news := NewNewsService(repo)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_, err := repo.CreateNews(ctx, &repository.NewsDB{
			Title:  fmt.Sprintf("News %d", i),
			Body:   "body",
			Author: "Admin",
			Date:   time.Now().Unix() + int64(i),
		})
		require.NoError(t, err)
	}

	page, err := news.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.News, 2)
	assert.Equal(t, "News 4", page.News[0].Title)
	assert.Equal(t, model.PaginationAPI{Page: 1, Limit: 2, Total: 5, TotalPages: 3}, page.Pagination)

	page, err = news.List(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page.News, 1)

	page, err = news.List(ctx, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 50, page.Pagination.Limit)

	page, err = news.List(ctx, math.MaxInt, 50)
	require.NoError(t, err, "huge pages must not overflow the offset")
	assert.Empty(t, page.News)
	assert.Positive(t, page.Pagination.Page)
}

func TestNewsComments(t *testing.T) {
	repo := testRepository(t)
	accounts := testAccountService(t, repo)
	news := NewNewsService(repo)
	ctx := context.Background()

	owner, _, err := accounts.Register(ctx, testRegister())
	require.NoError(t, err)
	other, err := accounts.Create(ctx, "trainer02", "secret1", "t2@x.io", "Trainer2")
	require.NoError(t, err)

	page, err := news.List(ctx, 1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, page.News)
	newsID := page.News[0].ID

	_, err = news.AddComment(ctx, newsID, other.ID, &model.AddCommentAPI{CharacterName: "Ash01", Body: "mine now"})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = news.AddComment(ctx, newsID, owner.ID, &model.AddCommentAPI{CharacterName: "Nobody", Body: "hi"})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = news.AddComment(ctx, newsID+100, owner.ID, &model.AddCommentAPI{CharacterName: "Ash01", Body: "hi"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	comment, err := news.AddComment(ctx, newsID, owner.ID, &model.AddCommentAPI{CharacterName: "ash01", Body: "  first!  "})
	require.NoError(t, err)
	assert.Equal(t, "Ash01", comment.Author)
	assert.Equal(t, "first!", comment.Body)

	item, comments, err := news.Get(ctx, newsID)
	require.NoError(t, err)
	assert.Equal(t, newsID, item.ID)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	_, _, err = news.Get(ctx, newsID+100)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestHighscores(t *testing.T) {
	repo := testRepository(t)
	accounts := testAccountService(t, repo)
	highscores := NewHighscoreService(repo, testTemplate)
	ctx := context.Background()

	_, _, err := accounts.Register(ctx, testRegister())
	require.NoError(t, err)

	second := testRegister()
	second.Name, second.Email, second.Nickname, second.Character.Name = "trainer02", "t2@x.io", "Trainer2", "Gary02"
	_, _, err = accounts.Register(ctx, second)
	require.NoError(t, err)

	list, err := highscores.Get(ctx, "level", 0)
	require.NoError(t, err)
	require.Len(t, list, 1, "limits below one are raised to one")
	assert.Equal(t, 1, list[0].Rank)
	assert.Equal(t, "Ash01", list[0].Name)

	list, err = highscores.Get(ctx, "fishing", 1000)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(10), list[0].Value)
	assert.Equal(t, 2, list[1].Rank)

	_, err = highscores.Get(ctx, "cooking", 10)
	assert.ErrorIs(t, err, model.ErrInvalidCategory)
}
