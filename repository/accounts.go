package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"pokeelite_backend/model"
)

func (r *Repository) AccountNameExists(ctx context.Context, name string) (bool, error) {
	return r.valueExists(ctx, "SELECT COUNT(*) FROM accounts WHERE name = ?", name)
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.valueExists(ctx, "SELECT COUNT(*) FROM accounts WHERE email = ?", email)
}

func (r *Repository) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	return r.valueExists(ctx, "SELECT COUNT(*) FROM accounts WHERE nickname = ?", nickname)
}

// CreateAccount inserts the account and sets data.ID. Unique key violations
// come back as *model.DuplicateIdentityError.
func (r *Repository) CreateAccount(ctx context.Context, data *AccountDB) error {
	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		id, err := insertAccount(ctx, tx, data)
		if err != nil {
			return classify("create account", err)
		}
		data.ID = id
		return nil
	})
}

// CreateAccountWithCharacter inserts an account and its first character,
// cloned from the template, in one transaction.
func (r *Repository) CreateAccountWithCharacter(ctx context.Context, account *AccountDB, character *CharacterDB, templateName string) error {
	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		id, err := insertAccount(ctx, tx, account)
		if err != nil {
			return classify("create account", err)
		}
		account.ID = id
		character.AccountID = id

		return provisionCharacter(ctx, tx, character, templateName, 0)
	})
}

func insertAccount(ctx context.Context, tx *sqlx.Tx, data *AccountDB) (int64, error) {
	query := "INSERT INTO accounts (name, password, email, nickname, premdays, recovery_key, credential_version, created_at) " +
		"VALUES (:name, :password, :email, :nickname, :premdays, :recovery_key, :credential_version, :created_at)"

	result, err := tx.NamedExecContext(ctx, query, data)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *Repository) findAccount(ctx context.Context, where string, arg interface{}) (*AccountDB, error) {
	var data AccountDB
	query := "SELECT " + accountColumns + " FROM accounts WHERE " + where
	if err := r.DB.GetContext(ctx, &data, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("find account", err)
	}
	return &data, nil
}

// FindAccountByName returns nil when no account has that name.
func (r *Repository) FindAccountByName(ctx context.Context, name string) (*AccountDB, error) {
	return r.findAccount(ctx, "name = ?", name)
}

func (r *Repository) FindAccountByID(ctx context.Context, id int64) (*AccountDB, error) {
	return r.findAccount(ctx, "id = ?", id)
}

func (r *Repository) FindAccountByEmail(ctx context.Context, email string) (*AccountDB, error) {
	return r.findAccount(ctx, "email = ?", email)
}

// UpdatePassword stores the new digest and bumps the credential version so
// tokens issued before the change stop being accepted.
func (r *Repository) UpdatePassword(ctx context.Context, accountID int64, digest string) error {
	query := "UPDATE accounts SET password = ?, credential_version = credential_version + 1 WHERE id = ?"

	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, digest, accountID)
		if err != nil {
			return storageErr("update password", err)
		}
		if err = expectOneRow(result); errors.Is(err, errNoRowsAffected) {
			return model.ErrNotFound
		}
		return err
	})
}

func (r *Repository) SetRecoveryKey(ctx context.Context, accountID int64, digest string) error {
	query := "UPDATE accounts SET recovery_key = ? WHERE id = ?"

	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, digest, accountID)
		if err != nil {
			return storageErr("set recovery key", err)
		}
		if err = expectOneRow(result); errors.Is(err, errNoRowsAffected) {
			return model.ErrNotFound
		}
		return err
	})
}

// RecoverPassword stores the new digest and drops the recovery key, which is
// good for one recovery only.
func (r *Repository) RecoverPassword(ctx context.Context, accountID int64, digest string) error {
	query := "UPDATE accounts SET password = ?, recovery_key = NULL, credential_version = credential_version + 1 WHERE id = ?"

	return withTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, digest, accountID)
		if err != nil {
			return storageErr("recover password", err)
		}
		if err = expectOneRow(result); errors.Is(err, errNoRowsAffected) {
			return model.ErrNotFound
		}
		return err
	})
}
