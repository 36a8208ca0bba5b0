package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

func (r *Repository) ListNews(ctx context.Context, limit, offset int) ([]NewsDB, error) {
	var news []NewsDB
	query := "SELECT id, title, body, author, date FROM news ORDER BY date DESC, id DESC LIMIT ? OFFSET ?"
	if err := r.DB.SelectContext(ctx, &news, query, limit, offset); err != nil {
		return nil, storageErr("list news", err)
	}
	return news, nil
}

func (r *Repository) CountNews(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM news"); err != nil {
		return 0, storageErr("count news", err)
	}
	return count, nil
}

// FindNews returns nil when the entry does not exist.
func (r *Repository) FindNews(ctx context.Context, id int64) (*NewsDB, error) {
	var news NewsDB
	if err := r.DB.GetContext(ctx, &news, "SELECT id, title, body, author, date FROM news WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("find news", err)
	}
	return &news, nil
}

func (r *Repository) CreateNews(ctx context.Context, data *NewsDB) (int64, error) {
	var id int64
	err := withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := "INSERT INTO news (title, body, author, date) VALUES (:title, :body, :author, :date)"
		result, err := tx.NamedExecContext(ctx, query, data)
		if err != nil {
			return storageErr("create news", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return storageErr("create news", err)
		}
		return nil
	})
	return id, err
}

func (r *Repository) ListComments(ctx context.Context, newsID int64) ([]CommentDB, error) {
	var comments []CommentDB
	query := "SELECT id, news_id, author, body, date FROM news_comments WHERE news_id = ? ORDER BY date, id"
	if err := r.DB.SelectContext(ctx, &comments, query, newsID); err != nil {
		return nil, storageErr("list comments", err)
	}
	return comments, nil
}

// AddComment inserts the comment and sets data.ID.
func (r *Repository) AddComment(ctx context.Context, data *CommentDB) error {
	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := "INSERT INTO news_comments (news_id, author, body, date) VALUES (:news_id, :author, :body, :date)"
		result, err := tx.NamedExecContext(ctx, query, data)
		if err != nil {
			return storageErr("add comment", err)
		}
		if data.ID, err = result.LastInsertId(); err != nil {
			return storageErr("add comment", err)
		}
		return nil
	})
}
