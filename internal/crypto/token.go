package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenSize размер случайного токена в байтах (256 бит)
const TokenSize = 32

// GenerateToken создает криптографически случайный токен в base64url без паддинга
// Токен не содержит данных пользователя и ищется в БД по значению
func GenerateToken() (string, error) {
	tokenBytes := make([]byte, TokenSize)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}
