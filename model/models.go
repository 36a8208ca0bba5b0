package model

import (
	"errors"
	"strings"
	"time"
)

const (
	errEmptyFields   = "one or more fields are empty"
	errAccountName   = "invalid account name"
	errPassword      = "invalid password length"
	errEmail         = "invalid email address"
	errNickname      = "invalid nickname"
	errCharacterName = "invalid character name"
	errSex           = "invalid sex"
	errNegative      = "vocation, city and world must not be negative"
	errComment       = "comment too long"
	errCommentBody   = "invalid comment body"
	errRecoveryKey   = "invalid recovery key"
)

type BaseResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type RegisterAPI struct {
	Name      string              `json:"name"`
	Password  string              `json:"password"`
	Email     string              `json:"email"`
	Nickname  string              `json:"nickname"`
	Character *CreateCharacterAPI `json:"character,omitempty"`
}

func (r *RegisterAPI) Validate() error {
	if r.Name == "" || r.Password == "" || r.Email == "" || r.Nickname == "" {
		return errors.New(errEmptyFields)
	}

	if !checkAccountName(r.Name) {
		return errors.New(errAccountName)
	}

	if !checkPassword(r.Password) {
		return errors.New(errPassword)
	}

	if !checkEmail(r.Email) {
		return errors.New(errEmail)
	}

	if !checkNickname(r.Nickname) {
		return errors.New(errNickname)
	}

	// the first character is optional, it can be created later
	if r.Character == nil {
		return nil
	}
	return r.Character.Validate()
}

type LoginAPI struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (l *LoginAPI) Validate() error {
	if l.Name == "" || l.Password == "" {
		return errors.New(errEmptyFields)
	}
	return nil
}

type ChangePasswordAPI struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (c *ChangePasswordAPI) Validate() error {
	if c.CurrentPassword == "" || c.NewPassword == "" {
		return errors.New(errEmptyFields)
	}

	if !checkPassword(c.NewPassword) {
		return errors.New(errPassword)
	}

	return nil
}

// RecoveryKeyAPI asks for a new recovery key; the password is re-checked
// because a leaked token alone must not be enough to take over the account.
type RecoveryKeyAPI struct {
	Password string `json:"password"`
}

func (r *RecoveryKeyAPI) Validate() error {
	if r.Password == "" {
		return errors.New(errEmptyFields)
	}
	return nil
}

type RecoverAPI struct {
	Email       string `json:"email"`
	RecoveryKey string `json:"recovery_key"`
	NewPassword string `json:"new_password"`
}

func (r *RecoverAPI) Validate() error {
	if r.Email == "" || r.RecoveryKey == "" || r.NewPassword == "" {
		return errors.New(errEmptyFields)
	}

	if !checkEmail(r.Email) {
		return errors.New(errEmail)
	}

	if len(r.RecoveryKey) > 64 {
		return errors.New(errRecoveryKey)
	}

	if !checkPassword(r.NewPassword) {
		return errors.New(errPassword)
	}

	return nil
}

type CreateCharacterAPI struct {
	Name     string `json:"name"`
	Sex      int    `json:"sex"`
	Vocation int    `json:"vocation"`
	City     int    `json:"city"`
	World    int    `json:"world"`
}

func (c *CreateCharacterAPI) Validate() error {
	if c.Name == "" {
		return errors.New(errEmptyFields)
	}

	if !checkCharacterName(c.Name) {
		return errors.New(errCharacterName)
	}

	if c.Sex != 0 && c.Sex != 1 {
		return errors.New(errSex)
	}

	if c.Vocation < 0 || c.City < 0 || c.World < 0 {
		return errors.New(errNegative)
	}

	return nil
}

type UpdateCommentAPI struct {
	Comment  string `json:"comment"`
	HideChar bool   `json:"hide_char"`
}

func (u *UpdateCommentAPI) Validate() error {
	if !lengthBetween(u.Comment, 0, 255) {
		return errors.New(errComment)
	}
	return nil
}

type AddCommentAPI struct {
	CharacterName string `json:"character_name"`
	Body          string `json:"body"`
}

func (a *AddCommentAPI) Validate() error {
	if a.CharacterName == "" {
		return errors.New(errEmptyFields)
	}

	if !lengthBetween(strings.TrimSpace(a.Body), 1, 500) {
		return errors.New(errCommentBody)
	}

	return nil
}

// Identity is what a verified session token asserts about its bearer.
type Identity struct {
	AccountID         int64
	AccountName       string
	CredentialVersion int
}

// AccountAPI is the public projection of an account. It never carries the
// password or recovery key digests.
type AccountAPI struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Nickname    string    `json:"nickname"`
	PremiumDays int       `json:"premium_days"`
	CreatedAt   time.Time `json:"created_at"`

	CredentialVersion int `json:"-"`
}

type CharacterAPI struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"-"`
	AccountNickname string    `json:"account_nickname,omitempty"`
	Name            string    `json:"name"`
	WorldID         int       `json:"world_id"`
	Sex             int       `json:"sex"`
	Vocation        int       `json:"vocation"`
	Level           int       `json:"level"`
	Experience      int64     `json:"experience"`
	Health          int       `json:"health"`
	HealthMax       int       `json:"health_max"`
	Mana            int       `json:"mana"`
	ManaMax         int       `json:"mana_max"`
	MagicLevel      int       `json:"magic_level"`
	ManaSpent       int64     `json:"mana_spent"`
	Soul            int       `json:"soul"`
	TownID          int       `json:"town_id"`
	PosX            int       `json:"pos_x"`
	PosY            int       `json:"pos_y"`
	PosZ            int       `json:"pos_z"`
	Capacity        int       `json:"capacity"`
	Online          bool      `json:"online"`
	Comment         string    `json:"comment"`
	HideChar        bool      `json:"hide_char"`
	CreatedAt       time.Time `json:"created_at"`
}

type SkillAPI struct {
	SkillID int    `json:"skill_id"`
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Count   int    `json:"count"`
}

type NewsAPI struct {
	ID     int64     `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

type CommentAPI struct {
	ID     int64     `json:"id"`
	NewsID int64     `json:"news_id"`
	Author string    `json:"author"`
	Body   string    `json:"body"`
	Date   time.Time `json:"date"`
}

type PaginationAPI struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type NewsPageAPI struct {
	News       []NewsAPI     `json:"news"`
	Pagination PaginationAPI `json:"pagination"`
}

type HighscoreAPI struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Vocation int    `json:"vocation"`
	WorldID  int    `json:"world_id"`
	Value    int64  `json:"value"`
}

// AuthResponse answers register, login and the password flows.
type AuthResponse struct {
	BaseResponse
	Token     string        `json:"token,omitempty"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	Account   *AccountAPI   `json:"account,omitempty"`
	Character *CharacterAPI `json:"character,omitempty"`
}
