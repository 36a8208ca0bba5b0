package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const mysqlDuplicateEntry = 1062

// Unique keys as they show up in driver messages: MySQL names the index
// ("accounts_email"), SQLite names the column ("accounts.email").
const (
	keyAccountName     = "accounts.name"
	keyAccountEmail    = "accounts.email"
	keyAccountNickname = "accounts.nickname"
	keyPlayerName      = "players.name"
)

var uniqueKeys = []string{keyAccountNickname, keyAccountEmail, keyAccountName, keyPlayerName}

// duplicateKey reports whether err is a unique constraint violation and, when
// it can tell, which key was hit. The key is empty for unrecognised indexes.
func duplicateKey(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var myErr *mysql.MySQLError
	var liteErr *sqlite.Error
	switch {
	case errors.As(err, &myErr):
		if myErr.Number != mysqlDuplicateEntry {
			return "", false
		}
	case errors.As(err, &liteErr):
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		case sqlite3.SQLITE_CONSTRAINT:
			if !strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
				return "", false
			}
		default:
			return "", false
		}
	default:
		return "", false
	}

	msg := constraintName(strings.ToLower(err.Error()))
	for _, key := range uniqueKeys {
		if strings.Contains(msg, key) || strings.Contains(msg, strings.Replace(key, ".", "_", 1)) {
			return key, true
		}
	}
	return "", true
}

// constraintName cuts the driver message down to the part naming the index or
// column. MySQL quotes the duplicate value before the key name, and that value
// is user input.
func constraintName(msg string) string {
	if i := strings.LastIndex(msg, "for key '"); i >= 0 {
		return msg[i+len("for key '"):]
	}
	if i := strings.LastIndex(msg, "unique constraint failed:"); i >= 0 {
		return msg[i+len("unique constraint failed:"):]
	}
	return msg
}

func accountField(key string) string {
	switch key {
	case keyAccountName:
		return "name"
	case keyAccountEmail:
		return "email"
	case keyAccountNickname:
		return "nickname"
	default:
		return ""
	}
}
