package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pokeelite_backend/model"
)

func (r *Repository) CharacterNameExists(ctx context.Context, name string) (bool, error) {
	return r.valueExists(ctx, "SELECT COUNT(*) FROM players WHERE name = ?", name)
}

func (r *Repository) CountCharacters(ctx context.Context, accountID int64) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM players WHERE account_id = ?", accountID); err != nil {
		return 0, storageErr("count characters", err)
	}
	return count, nil
}

// CreateCharacter clones the template into a new character for
// data.AccountID and sets data to the stored row. limit caps the number of
// characters the account may own; 0 disables the check.
func (r *Repository) CreateCharacter(ctx context.Context, data *CharacterDB, templateName string, limit int) error {
	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		return provisionCharacter(ctx, tx, data, templateName, limit)
	})
}

// provisionCharacter copies the template's stat block and skill rows. The
// caller owns the transaction, so a failure at any step leaves nothing behind.
func provisionCharacter(ctx context.Context, tx *sqlx.Tx, data *CharacterDB, templateName string, limit int) error {
	var template CharacterDB
	query := "SELECT " + characterColumns + " FROM players WHERE name = ?"
	if err := tx.GetContext(ctx, &template, query, templateName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrTemplateMissing
		}
		return storageErr("load template", err)
	}

	if limit > 0 {
		// creates for the same owner queue on the account row; a plain
		// COUNT under InnoDB snapshot reads would let two of them pass
		if tx.DriverName() == DriverMySQL {
			var ownerID int64
			if err := tx.GetContext(ctx, &ownerID, "SELECT id FROM accounts WHERE id = ? FOR UPDATE", data.AccountID); err != nil {
				return storageErr("lock account", err)
			}
		}

		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM players WHERE account_id = ?", data.AccountID); err != nil {
			return storageErr("count characters", err)
		}
		if count >= limit {
			return model.ErrCharacterLimitReached
		}
	}

	var skills []SkillDB
	query = "SELECT player_id, skillid, value, count FROM player_skills WHERE player_id = ? ORDER BY skillid"
	if err := tx.SelectContext(ctx, &skills, query, template.ID); err != nil {
		return storageErr("load template skills", err)
	}

	character := template
	character.ID = 0
	character.AccountID = data.AccountID
	character.Name = data.Name
	character.Sex = data.Sex
	character.Vocation = data.Vocation
	character.TownID = data.TownID
	character.WorldID = data.WorldID
	character.GroupID = 1
	character.Online = 0
	character.Comment = ""
	character.HideChar = 0
	character.CreatedAt = data.CreatedAt

	id, err := insertCharacter(ctx, tx, &character)
	if err != nil {
		return err
	}
	character.ID = id

	for _, skill := range skills {
		skill.PlayerID = id
		if err = insertSkill(ctx, tx, &skill); err != nil {
			return err
		}
	}

	*data = character
	return nil
}

func insertCharacter(ctx context.Context, tx *sqlx.Tx, data *CharacterDB) (int64, error) {
	query := "INSERT INTO players (account_id, name, world_id, group_id, sex, vocation, level, experience, " +
		"health, healthmax, mana, manamax, maglevel, manaspent, soul, town_id, posx, posy, posz, cap, " +
		"online, comment, hide_char, created_at) VALUES (:account_id, :name, :world_id, :group_id, :sex, :vocation, " +
		":level, :experience, :health, :healthmax, :mana, :manamax, :maglevel, :manaspent, :soul, :town_id, " +
		":posx, :posy, :posz, :cap, :online, :comment, :hide_char, :created_at)"

	result, err := tx.NamedExecContext(ctx, query, data)
	if err != nil {
		return 0, classify("insert character", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("insert character", err)
	}
	return id, nil
}

func insertSkill(ctx context.Context, tx *sqlx.Tx, data *SkillDB) error {
	query := "INSERT INTO player_skills (player_id, skillid, value, count) VALUES (:player_id, :skillid, :value, :count)"

	result, err := tx.NamedExecContext(ctx, query, data)
	if err != nil {
		return storageErr(fmt.Sprintf("insert skill %d", data.SkillID), err)
	}
	return expectOneRow(result)
}

// FindCharacterByName returns nil when no character has that name.
func (r *Repository) FindCharacterByName(ctx context.Context, name string) (*CharacterViewDB, error) {
	var data CharacterViewDB
	query := "SELECT " + characterColumnsP + ", a.nickname AS account_nickname " +
		"FROM players p JOIN accounts a ON p.account_id = a.id WHERE p.name = ?"
	if err := r.DB.GetContext(ctx, &data, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("find character", err)
	}
	return &data, nil
}

func (r *Repository) ListCharactersByAccount(ctx context.Context, accountID int64) ([]CharacterDB, error) {
	var characters []CharacterDB
	query := "SELECT " + characterColumns + " FROM players WHERE account_id = ? ORDER BY name"
	if err := r.DB.SelectContext(ctx, &characters, query, accountID); err != nil {
		return nil, storageErr("list characters", err)
	}
	return characters, nil
}

// DeleteCharacter removes the character only when accountID owns it. Skills
// go with it through the cascading foreign key.
func (r *Repository) DeleteCharacter(ctx context.Context, characterID, accountID int64) (bool, error) {
	deleted := false
	err := withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = ? AND account_id = ?", characterID, accountID)
		if err != nil {
			return storageErr("delete character", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return storageErr("delete character", err)
		}
		deleted = rows > 0
		return nil
	})
	return deleted, err
}

func (r *Repository) UpdateComment(ctx context.Context, characterID int64, comment string, hide bool) error {
	hideChar := 0
	if hide {
		hideChar = 1
	}

	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		// MySQL reports 0 affected rows when nothing changed, so no row check here
		if _, err := tx.ExecContext(ctx, "UPDATE players SET comment = ?, hide_char = ? WHERE id = ?", comment, hideChar, characterID); err != nil {
			return storageErr("update comment", err)
		}
		return nil
	})
}

func (r *Repository) ListOnline(ctx context.Context) ([]CharacterDB, error) {
	var characters []CharacterDB
	query := "SELECT " + characterColumns + " FROM players WHERE online = 1 ORDER BY level DESC, name"
	if err := r.DB.SelectContext(ctx, &characters, query); err != nil {
		return nil, storageErr("list online", err)
	}
	return characters, nil
}

func (r *Repository) CharacterBelongsTo(ctx context.Context, characterID, accountID int64) (bool, error) {
	return r.valueExists(ctx, "SELECT COUNT(*) FROM players WHERE id = ? AND account_id = ?", characterID, accountID)
}

func (r *Repository) CharacterSkills(ctx context.Context, characterID int64) ([]SkillDB, error) {
	var skills []SkillDB
	query := "SELECT player_id, skillid, value, count FROM player_skills WHERE player_id = ? ORDER BY skillid"
	if err := r.DB.SelectContext(ctx, &skills, query, characterID); err != nil {
		return nil, storageErr("character skills", err)
	}
	return skills, nil
}
