package service

import (
	"context"
	"time"

	"pokeelite_backend/model"
	"pokeelite_backend/repository"
)

// Storage the services depend on. *repository.Repository satisfies all of them.

type AccountStore interface {
	AccountNameExists(ctx context.Context, name string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NicknameExists(ctx context.Context, nickname string) (bool, error)
	CharacterNameExists(ctx context.Context, name string) (bool, error)
	CreateAccount(ctx context.Context, data *repository.AccountDB) error
	CreateAccountWithCharacter(ctx context.Context, account *repository.AccountDB, character *repository.CharacterDB, templateName string) error
	FindAccountByName(ctx context.Context, name string) (*repository.AccountDB, error)
	FindAccountByID(ctx context.Context, id int64) (*repository.AccountDB, error)
	FindAccountByEmail(ctx context.Context, email string) (*repository.AccountDB, error)
	UpdatePassword(ctx context.Context, accountID int64, digest string) error
	SetRecoveryKey(ctx context.Context, accountID int64, digest string) error
	RecoverPassword(ctx context.Context, accountID int64, digest string) error
}

type CharacterStore interface {
	CharacterNameExists(ctx context.Context, name string) (bool, error)
	CountCharacters(ctx context.Context, accountID int64) (int, error)
	CreateCharacter(ctx context.Context, data *repository.CharacterDB, templateName string, limit int) error
	FindCharacterByName(ctx context.Context, name string) (*repository.CharacterViewDB, error)
	ListCharactersByAccount(ctx context.Context, accountID int64) ([]repository.CharacterDB, error)
	DeleteCharacter(ctx context.Context, characterID, accountID int64) (bool, error)
	UpdateComment(ctx context.Context, characterID int64, comment string, hide bool) error
	ListOnline(ctx context.Context) ([]repository.CharacterDB, error)
	CharacterBelongsTo(ctx context.Context, characterID, accountID int64) (bool, error)
	CharacterSkills(ctx context.Context, characterID int64) ([]repository.SkillDB, error)
}

type NewsStore interface {
	ListNews(ctx context.Context, limit, offset int) ([]repository.NewsDB, error)
	CountNews(ctx context.Context) (int, error)
	FindNews(ctx context.Context, id int64) (*repository.NewsDB, error)
	ListComments(ctx context.Context, newsID int64) ([]repository.CommentDB, error)
	AddComment(ctx context.Context, data *repository.CommentDB) error
	FindCharacterByName(ctx context.Context, name string) (*repository.CharacterViewDB, error)
}

type HighscoreStore interface {
	Highscores(ctx context.Context, category string, limit int, templateName string) ([]repository.HighscoreDB, error)
}

// Services the handlers depend on.

type AccountServiceInterface interface {
	NameExists(ctx context.Context, name string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NicknameExists(ctx context.Context, nickname string) (bool, error)
	Create(ctx context.Context, name, password, email, nickname string) (*model.AccountAPI, error)
	Register(ctx context.Context, data *model.RegisterAPI) (*model.AccountAPI, *model.CharacterAPI, error)
	FindByName(ctx context.Context, name string) (*model.AccountAPI, error)
	FindByID(ctx context.Context, id int64) (*model.AccountAPI, error)
	ValidateLogin(ctx context.Context, name, password string) (*model.AccountAPI, error)
	UpdatePassword(ctx context.Context, accountID int64, newPassword string) error
	ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error
	GenerateRecoveryKey(ctx context.Context, accountID int64) (string, error)
	ValidateRecoveryKey(ctx context.Context, email, key string) (int64, error)
	RecoverPassword(ctx context.Context, email, key, newPassword string) (*model.AccountAPI, error)
}

type CharacterServiceInterface interface {
	Create(ctx context.Context, accountID int64, data *model.CreateCharacterAPI) (*model.CharacterAPI, error)
	NameExists(ctx context.Context, name string) (bool, error)
	FindByName(ctx context.Context, name string) (*model.CharacterAPI, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.CharacterAPI, error)
	CountByAccount(ctx context.Context, accountID int64) (int, error)
	Delete(ctx context.Context, characterID, accountID int64) (bool, error)
	UpdateComment(ctx context.Context, characterID int64, comment string, hide bool) error
	ListOnline(ctx context.Context) ([]model.CharacterAPI, error)
	BelongsToAccount(ctx context.Context, characterID, accountID int64) (bool, error)
	Skills(ctx context.Context, characterID int64) ([]model.SkillAPI, error)
}

type TokenServiceInterface interface {
	Issue(accountID int64, accountName string, credentialVersion int) (string, time.Time, error)
	Verify(token string) (*model.Identity, error)
}

type NewsServiceInterface interface {
	List(ctx context.Context, page, limit int) (*model.NewsPageAPI, error)
	Get(ctx context.Context, id int64) (*model.NewsAPI, []model.CommentAPI, error)
	AddComment(ctx context.Context, newsID, accountID int64, data *model.AddCommentAPI) (*model.CommentAPI, error)
}

type HighscoreServiceInterface interface {
	Get(ctx context.Context, category string, limit int) ([]model.HighscoreAPI, error)
}

type LoggerInterface interface {
	Info(msg string)
	Warning(msg string)
	Exception(msg string)
	Debug(msg string)
	Shutdown()
}

type EmailInterface interface {
	SendEmail(to, subject, body string) error
}
