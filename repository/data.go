package repository

import "database/sql"

type AccountDB struct {
	ID                int64          `db:"id"`
	Name              string         `db:"name"`
	Password          string         `db:"password"`
	Email             string         `db:"email"`
	Nickname          string         `db:"nickname"`
	PremiumDays       int            `db:"premdays"`
	RecoveryKey       sql.NullString `db:"recovery_key"`
	CredentialVersion int            `db:"credential_version"`
	CreatedAt         int64          `db:"created_at"`
}

type CharacterDB struct {
	ID         int64  `db:"id"`
	AccountID  int64  `db:"account_id"`
	Name       string `db:"name"`
	WorldID    int    `db:"world_id"`
	GroupID    int    `db:"group_id"`
	Sex        int    `db:"sex"`
	Vocation   int    `db:"vocation"`
	Level      int    `db:"level"`
	Experience int64  `db:"experience"`
	Health     int    `db:"health"`
	HealthMax  int    `db:"healthmax"`
	Mana       int    `db:"mana"`
	ManaMax    int    `db:"manamax"`
	MagicLevel int    `db:"maglevel"`
	ManaSpent  int64  `db:"manaspent"`
	Soul       int    `db:"soul"`
	TownID     int    `db:"town_id"`
	PosX       int    `db:"posx"`
	PosY       int    `db:"posy"`
	PosZ       int    `db:"posz"`
	Capacity   int    `db:"cap"`
	Online     int    `db:"online"`
	Comment    string `db:"comment"`
	HideChar   int    `db:"hide_char"`
	CreatedAt  int64  `db:"created_at"`
}

// CharacterViewDB is a character joined with its owner's public fields.
type CharacterViewDB struct {
	CharacterDB
	AccountNickname string `db:"account_nickname"`
}

type SkillDB struct {
	PlayerID int64 `db:"player_id"`
	SkillID  int   `db:"skillid"`
	Value    int   `db:"value"`
	Count    int   `db:"count"`
}

type NewsDB struct {
	ID     int64  `db:"id"`
	Title  string `db:"title"`
	Body   string `db:"body"`
	Author string `db:"author"`
	Date   int64  `db:"date"`
}

type CommentDB struct {
	ID     int64  `db:"id"`
	NewsID int64  `db:"news_id"`
	Author string `db:"author"`
	Body   string `db:"body"`
	Date   int64  `db:"date"`
}

type HighscoreDB struct {
	Name     string `db:"name"`
	Level    int    `db:"level"`
	Vocation int    `db:"vocation"`
	WorldID  int    `db:"world_id"`
	Value    int64  `db:"value"`
}

const characterColumns = "id, account_id, name, world_id, group_id, sex, vocation, level, experience, " +
	"health, healthmax, mana, manamax, maglevel, manaspent, soul, town_id, posx, posy, posz, cap, " +
	"online, comment, hide_char, created_at"

const characterColumnsP = "p.id, p.account_id, p.name, p.world_id, p.group_id, p.sex, p.vocation, p.level, p.experience, " +
	"p.health, p.healthmax, p.mana, p.manamax, p.maglevel, p.manaspent, p.soul, p.town_id, p.posx, p.posy, p.posz, p.cap, " +
	"p.online, p.comment, p.hide_char, p.created_at"

const accountColumns = "id, name, password, email, nickname, premdays, recovery_key, credential_version, created_at"
