package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost минимальная стоимость bcrypt для паролей пользователей
const DefaultPasswordCost = 12

// ErrPasswordMismatch возвращается, если пароль не совпадает с хешем
var ErrPasswordMismatch = errors.New("password does not match hash")

// PasswordHasher хеширует и проверяет пароли через bcrypt
// Пароль в открытом виде нигде не сохраняется и не логируется
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создает hasher с заданной стоимостью bcrypt
// Значения вне диапазона bcrypt приводятся к ближайшей границе
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost <= 0 {
		cost = DefaultPasswordCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost возвращает используемую стоимость bcrypt
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// HashPassword возвращает bcrypt хеш пароля (соль генерируется внутри)
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword проверяет пароль против сохраненного хеша
// Возвращает ErrPasswordMismatch при несовпадении
func (h *PasswordHasher) VerifyPassword(hash, password string) error {
	if hash == "" {
		return fmt.Errorf("hash cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}

	return nil
}
