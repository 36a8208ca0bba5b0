package repository

import (
	"context"

	"pokeelite_backend/model"
)

// Highscores ranks regular players (group_id <= 3) by category. The template
// character is never ranked.
func (r *Repository) Highscores(ctx context.Context, category string, limit int, templateName string) ([]HighscoreDB, error) {
	var query string
	args := []interface{}{templateName, limit}

	switch category {
	case model.CategoryLevel:
		query = "SELECT name, level, vocation, world_id, experience AS value FROM players " +
			"WHERE group_id <= 3 AND name <> ? ORDER BY level DESC, experience DESC, name LIMIT ?"
	case model.CategoryMagic:
		query = "SELECT name, level, vocation, world_id, maglevel AS value FROM players " +
			"WHERE group_id <= 3 AND name <> ? ORDER BY maglevel DESC, manaspent DESC, name LIMIT ?"
	default:
		skillID, ok := model.SkillByName(category)
		if !ok {
			return nil, model.ErrInvalidCategory
		}
		query = "SELECT p.name, p.level, p.vocation, p.world_id, s.value AS value FROM players p " +
			"JOIN player_skills s ON s.player_id = p.id AND s.skillid = ? " +
			"WHERE p.group_id <= 3 AND p.name <> ? ORDER BY s.value DESC, s.count DESC, p.name LIMIT ?"
		args = append([]interface{}{skillID}, args...)
	}

	var rows []HighscoreDB
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storageErr("highscores", err)
	}
	return rows, nil
}
