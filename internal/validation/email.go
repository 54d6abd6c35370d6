package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern определяет допустимый формат username
// Username в системе - это email: local@domain.tld без пробелов
var EmailPattern = regexp.MustCompile(`^[A-Za-z0-9.!#$%&'*+/=?^_{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*\.[A-Za-z]{2,63}$`)

const (
	// MaxEmailLen максимальная длина email (RFC 5321)
	MaxEmailLen = 254
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
	// MaxPasswordLen максимальная длина пароля в байтах (ограничение bcrypt)
	MaxPasswordLen = 72
)

// ValidateEmail проверяет, что username имеет форму email адреса
// Регистр сохраняется: username сравнивается с учетом регистра
func ValidateEmail(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxEmailLen {
		return fmt.Errorf("username must not exceed %d characters", MaxEmailLen)
	}

	if strings.Count(username, "@") != 1 || !EmailPattern.MatchString(username) {
		return fmt.Errorf("username must be a valid email address")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// От 6 символов, не длиннее 72 байт
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len([]rune(password)) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}
