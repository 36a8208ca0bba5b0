package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Canonical schema. Both renditions carry the same tables, columns, unique
// keys and cascading foreign keys; only the dialect differs.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id                 INT AUTO_INCREMENT PRIMARY KEY,
		name               VARCHAR(32)  NOT NULL,
		password           VARCHAR(255) NOT NULL,
		email              VARCHAR(255) NOT NULL,
		nickname           VARCHAR(32)  NOT NULL,
		premdays           INT          NOT NULL DEFAULT 0,
		recovery_key       VARCHAR(255) NULL,
		credential_version INT          NOT NULL DEFAULT 0,
		created_at         BIGINT       NOT NULL DEFAULT 0,
		UNIQUE KEY accounts_name (name),
		UNIQUE KEY accounts_email (email),
		UNIQUE KEY accounts_nickname (nickname)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS players (
		id         INT AUTO_INCREMENT PRIMARY KEY,
		account_id INT          NOT NULL,
		name       VARCHAR(32)  NOT NULL,
		world_id   INT          NOT NULL DEFAULT 0,
		group_id   INT          NOT NULL DEFAULT 1,
		sex        INT          NOT NULL DEFAULT 0,
		vocation   INT          NOT NULL DEFAULT 0,
		level      INT          NOT NULL DEFAULT 1,
		experience BIGINT       NOT NULL DEFAULT 0,
		health     INT          NOT NULL DEFAULT 150,
		healthmax  INT          NOT NULL DEFAULT 150,
		mana       INT          NOT NULL DEFAULT 0,
		manamax    INT          NOT NULL DEFAULT 0,
		maglevel   INT          NOT NULL DEFAULT 0,
		manaspent  BIGINT       NOT NULL DEFAULT 0,
		soul       INT          NOT NULL DEFAULT 0,
		town_id    INT          NOT NULL DEFAULT 1,
		posx       INT          NOT NULL DEFAULT 0,
		posy       INT          NOT NULL DEFAULT 0,
		posz       INT          NOT NULL DEFAULT 0,
		cap        INT          NOT NULL DEFAULT 400,
		online     TINYINT      NOT NULL DEFAULT 0,
		comment    VARCHAR(255) NOT NULL DEFAULT '',
		hide_char  TINYINT      NOT NULL DEFAULT 0,
		created_at BIGINT       NOT NULL DEFAULT 0,
		UNIQUE KEY players_name (name),
		KEY players_account_id (account_id),
		KEY players_online_level (online, level),
		CONSTRAINT players_account_fk FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS player_skills (
		player_id INT NOT NULL,
		skillid   INT NOT NULL,
		value     INT NOT NULL DEFAULT 10,
		count     INT NOT NULL DEFAULT 0,
		PRIMARY KEY (player_id, skillid),
		CONSTRAINT player_skills_player_fk FOREIGN KEY (player_id) REFERENCES players (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS news (
		id     INT AUTO_INCREMENT PRIMARY KEY,
		title  VARCHAR(255) NOT NULL,
		body   TEXT         NOT NULL,
		author VARCHAR(255) NOT NULL,
		date   BIGINT       NOT NULL,
		KEY news_date (date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS news_comments (
		id      INT AUTO_INCREMENT PRIMARY KEY,
		news_id INT          NOT NULL,
		author  VARCHAR(32)  NOT NULL,
		body    TEXT         NOT NULL,
		date    BIGINT       NOT NULL,
		KEY news_comments_news_id (news_id),
		CONSTRAINT news_comments_news_fk FOREIGN KEY (news_id) REFERENCES news (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SQLite compares with NOCASE on identity columns to match MySQL's default
// case-insensitive collation.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		name               TEXT    NOT NULL COLLATE NOCASE UNIQUE,
		password           TEXT    NOT NULL,
		email              TEXT    NOT NULL COLLATE NOCASE UNIQUE,
		nickname           TEXT    NOT NULL COLLATE NOCASE UNIQUE,
		premdays           INTEGER NOT NULL DEFAULT 0,
		recovery_key       TEXT    NULL,
		credential_version INTEGER NOT NULL DEFAULT 0,
		created_at         INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		name       TEXT    NOT NULL COLLATE NOCASE UNIQUE,
		world_id   INTEGER NOT NULL DEFAULT 0,
		group_id   INTEGER NOT NULL DEFAULT 1,
		sex        INTEGER NOT NULL DEFAULT 0,
		vocation   INTEGER NOT NULL DEFAULT 0,
		level      INTEGER NOT NULL DEFAULT 1,
		experience INTEGER NOT NULL DEFAULT 0,
		health     INTEGER NOT NULL DEFAULT 150,
		healthmax  INTEGER NOT NULL DEFAULT 150,
		mana       INTEGER NOT NULL DEFAULT 0,
		manamax    INTEGER NOT NULL DEFAULT 0,
		maglevel   INTEGER NOT NULL DEFAULT 0,
		manaspent  INTEGER NOT NULL DEFAULT 0,
		soul       INTEGER NOT NULL DEFAULT 0,
		town_id    INTEGER NOT NULL DEFAULT 1,
		posx       INTEGER NOT NULL DEFAULT 0,
		posy       INTEGER NOT NULL DEFAULT 0,
		posz       INTEGER NOT NULL DEFAULT 0,
		cap        INTEGER NOT NULL DEFAULT 400,
		online     INTEGER NOT NULL DEFAULT 0,
		comment    TEXT    NOT NULL DEFAULT '',
		hide_char  INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS players_account_id ON players (account_id)`,
	`CREATE TABLE IF NOT EXISTS player_skills (
		player_id INTEGER NOT NULL REFERENCES players (id) ON DELETE CASCADE,
		skillid   INTEGER NOT NULL,
		value     INTEGER NOT NULL DEFAULT 10,
		count     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (player_id, skillid)
	)`,
	`CREATE TABLE IF NOT EXISTS news (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		title  TEXT    NOT NULL,
		body   TEXT    NOT NULL,
		author TEXT    NOT NULL,
		date   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS news_comments (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		news_id INTEGER NOT NULL REFERENCES news (id) ON DELETE CASCADE,
		author  TEXT    NOT NULL,
		body    TEXT    NOT NULL,
		date    INTEGER NOT NULL
	)`,
}

const systemAccountName = "SYSTEM"

// Stat block of the template character created by Bootstrap.
var templateDefaults = CharacterDB{
	WorldID:   0,
	GroupID:   1,
	Sex:       0,
	Vocation:  1,
	Level:     8,
	Health:    185,
	HealthMax: 185,
	Mana:      35,
	ManaMax:   35,
	TownID:    1,
	PosX:      492,
	PosY:      1203,
	PosZ:      6,
	Capacity:  400,
}

const templateSkillValue = 10

// Migrate creates the tables that are missing.
func (r *Repository) Migrate(ctx context.Context) error {
	schema := mysqlSchema
	if r.driver == DriverSQLite {
		schema = sqliteSchema
	}

	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return storageErr("migrate", err)
		}
	}
	return nil
}

// Bootstrap migrates the schema and seeds the template character (owned by
// the SYSTEM account) plus a welcome news entry when they are missing.
func (r *Repository) Bootstrap(ctx context.Context, templateName string) error {
	if err := r.Migrate(ctx); err != nil {
		return err
	}

	if err := r.EnsureTemplate(ctx, templateName); err != nil {
		return err
	}

	return r.seedNews(ctx)
}

func (r *Repository) EnsureTemplate(ctx context.Context, templateName string) error {
	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM players WHERE name = ?", templateName); err != nil {
			return storageErr("find template", err)
		}
		if count > 0 {
			return nil
		}

		var systemID int64
		err := tx.GetContext(ctx, &systemID, "SELECT id FROM accounts WHERE name = ?", systemAccountName)
		if errors.Is(err, sql.ErrNoRows) {
			// "!" is not a bcrypt digest, so nobody can log into SYSTEM
			systemID, err = insertAccount(ctx, tx, &AccountDB{
				Name:      systemAccountName,
				Password:  "!",
				Email:     "system@localhost",
				Nickname:  "System",
				CreatedAt: time.Now().Unix(),
			})
		}
		if err != nil {
			return classify("system account", err)
		}

		template := templateDefaults
		template.AccountID = systemID
		template.Name = templateName
		template.CreatedAt = time.Now().Unix()
		templateID, err := insertCharacter(ctx, tx, &template)
		if err != nil {
			return err
		}

		for skillID := 0; skillID <= 6; skillID++ {
			skill := SkillDB{PlayerID: templateID, SkillID: skillID, Value: templateSkillValue}
			if err = insertSkill(ctx, tx, &skill); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) seedNews(ctx context.Context) error {
	count, err := r.CountNews(ctx)
	if err != nil || count > 0 {
		return err
	}

	_, err = r.CreateNews(ctx, &NewsDB{
		Title:  "Welcome to PokeElite!",
		Body:   "Create your account and start your adventure!",
		Author: "Admin",
		Date:   time.Now().Unix(),
	})
	return err
}
