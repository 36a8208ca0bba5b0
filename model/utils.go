package model

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	validAccountName   = regexp.MustCompile(`^[A-Za-z0-9_]{4,32}$`)
	validCharacterName = regexp.MustCompile(`^[A-Za-z0-9]+( [A-Za-z0-9]+)*$`)
)

func checkAccountName(s string) bool {
	return validAccountName.MatchString(s)
}

func checkCharacterName(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 4 || n > 32 {
		return false
	}
	return validCharacterName.MatchString(s)
}

func checkPassword(s string) bool {
	// bcrypt only reads the first 72 bytes
	return len(s) >= 4 && len(s) <= 72
}

func checkEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// reject "Name <addr>" forms, only the bare address is stored
	return addr.Address == s && len(s) <= 255
}

func checkNickname(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 4 && n <= 32 && strings.TrimSpace(s) == s
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
