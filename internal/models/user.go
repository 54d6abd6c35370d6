package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time `json:"created_at"` // время регистрации
	ID           string    `json:"id"`         // UUID пользователя
	Username     string    `json:"username"`   // уникальный username (email)
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля
	MfaSecret    string    `json:"-"`          // base32 TOTP секрет, пустой до enrollment
}

// HasMfa сообщает, настроен ли у пользователя второй фактор
func (u *User) HasMfa() bool {
	return u.MfaSecret != ""
}

// MfaChallenge представляет ожидающую проверку второго фактора
// Токен одноразовый: после первой попытки verify запись удаляется
type MfaChallenge struct {
	ExpiresAt time.Time `json:"expires_at"` // абсолютное время истечения
	CreatedAt time.Time `json:"created_at"` // время выдачи
	ID        string    `json:"id"`         // UUID challenge
	UserID    string    `json:"user_id"`    // ID владельца
	Token     string    `json:"-"`          // случайный токен, выдается клиенту как mfaSessionToken
}

// Expired сообщает, истек ли challenge к моменту now
func (c *MfaChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Session представляет долгоживущую сессию после успешной проверки OTP
type Session struct {
	ExpiresAt time.Time `json:"expires_at"` // абсолютное время истечения
	CreatedAt time.Time `json:"created_at"` // время выдачи
	Token     string    `json:"-"`          // непрозрачный случайный токен
	UserID    string    `json:"user_id"`    // ID владельца
}

// Expired сообщает, истекла ли сессия к моменту now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
