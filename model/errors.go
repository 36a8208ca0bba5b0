package model

import "errors"

var (
	ErrDuplicateIdentity     = errors.New("account identity already in use")
	ErrNameTaken             = errors.New("character name already exists")
	ErrCharacterLimitReached = errors.New("character limit reached")
	ErrTemplateMissing       = errors.New("template character not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrNotFoundOrNotOwned    = errors.New("character not found or not owned")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCategory       = errors.New("invalid highscore category")
	ErrStorageFailure        = errors.New("storage failure")
)

// Identity fields guarded by a unique constraint on accounts.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldNickname = "nickname"
)

// DuplicateIdentityError names the account field whose uniqueness was
// violated. Field is empty when storage did not say which one.
type DuplicateIdentityError struct {
	Field string
}

func (e *DuplicateIdentityError) Error() string {
	if e.Field == "" {
		return ErrDuplicateIdentity.Error()
	}
	return "account " + e.Field + " already in use"
}

func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// DuplicateMsg is the user facing message for a DuplicateIdentityError.
func DuplicateMsg(err error) string {
	var dup *DuplicateIdentityError
	if !errors.As(err, &dup) {
		return "Account name, email or nickname already in use."
	}
	switch dup.Field {
	case FieldName:
		return "Account name already exists."
	case FieldEmail:
		return "Email already in use."
	case FieldNickname:
		return "Nickname already exists."
	default:
		return "Account name, email or nickname already in use."
	}
}

// ErrorMsg maps validation errors to the message shown to the player.
func ErrorMsg(s string) string {
	switch s {
	case errEmptyFields:
		return "All fields must be filled in."
	case errAccountName:
		return "Account name must have 4 to 32 letters, digits or underscores."
	case errPassword:
		return "Password must have between 4 and 72 characters."
	case errEmail:
		return "The email address is invalid."
	case errNickname:
		return "Nickname must have between 4 and 32 characters."
	case errCharacterName:
		return "Character name must have 4 to 32 letters or digits, separated by single spaces."
	case errSex:
		return "Sex must be 0 or 1."
	case errNegative:
		return "Vocation, city and world can't be negative."
	case errComment:
		return "Comment can't be longer than 255 characters."
	case errCommentBody:
		return "Comment must have between 1 and 500 characters."
	case errRecoveryKey:
		return "The recovery key is invalid."
	default:
		return "The request contains invalid data."
	}
}
